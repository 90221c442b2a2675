package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileGenerator_Generate(t *testing.T) {
	g := NewProfileGenerator(7)
	e := employee(1, "Emily", "Johnson", "Engineering", 4)

	for i := 0; i < 50; i++ {
		p := g.Generate(e)

		assert.Equal(t, e, p.Employee)
		assert.True(t, strings.HasPrefix(p.Bio, "Experienced professional with "))
		assert.Contains(t, p.Bio, " in Engineering. Known for ")

		assert.Len(t, p.PerformanceHistory, 6)
		assert.Equal(t, "Jul", p.PerformanceHistory[0].Month)
		assert.Equal(t, "Dec", p.PerformanceHistory[5].Month)

		assert.GreaterOrEqual(t, len(p.Projects), 3)
		assert.LessOrEqual(t, len(p.Projects), 7)
		for i, pr := range p.Projects {
			assert.Equal(t, i+1, pr.ID)
			assert.GreaterOrEqual(t, pr.Progress, 0)
			assert.Less(t, pr.Progress, 100)
		}

		assert.GreaterOrEqual(t, len(p.Feedback), 4)
		assert.LessOrEqual(t, len(p.Feedback), 9)
		for _, f := range p.Feedback {
			assert.GreaterOrEqual(t, f.Rating, 1)
			assert.LessOrEqual(t, f.Rating, 5)
		}
	}
}

func TestProfileGenerator_MissingDepartment(t *testing.T) {
	p := NewProfileGenerator(1).Generate(employee(2, "A", "B", "", 1))
	assert.Contains(t, p.Bio, "in their field.")
}

func TestPromotionNotice(t *testing.T) {
	assert.Equal(t, "Emily Johnson has been promoted!", PromotionNotice(employee(1, "Emily", "Johnson", "", 1)))
}
