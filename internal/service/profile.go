package service

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/locvowork/hr_dashboard/internal/domain"
)

var (
	profileMonths    = []string{"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	monthlyFeedback  = []string{"Excellent work", "Good performance", "Needs improvement", "Outstanding", "Satisfactory"}
	projectNames     = []string{"Customer Portal Redesign", "Mobile App Development", "Data Migration Project", "API Integration", "Security Audit", "Performance Optimization", "User Experience Research", "Marketing Campaign"}
	projectStatuses  = []string{"Completed", "In Progress", "On Hold", "Planning"}
	projectRoles     = []string{"Lead Developer", "Team Member", "Project Manager", "Consultant"}
	feedbackTypes    = []string{"Performance Review", "Peer Feedback", "Client Feedback", "360 Review"}
	feedbackAuthors  = []string{"John Smith", "Sarah Johnson", "Mike Wilson", "Lisa Chen", "David Brown"}
	bioStrengths     = []string{"innovation", "leadership", "teamwork", "problem-solving", "creativity"}
	bioSkills        = []string{"attention to detail", "strategic thinking", "client relations", "technical expertise", "mentoring"}
	feedbackComments = []string{
		"Demonstrates excellent leadership skills and consistently delivers high-quality work.",
		"Great team player with strong communication skills. Always willing to help others.",
		"Shows initiative and takes ownership of projects. Reliable and dependable.",
		"Technical skills are outstanding. Needs to work on time management.",
		"Collaborative approach and positive attitude make them a valuable team member.",
	}
)

const profileDateLayout = "Jan 2, 2006"

// ProfileGenerator synthesizes the detail view of an employee.
type ProfileGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// NewProfileGenerator creates a generator seeded with seed. A zero seed uses the current time.
func NewProfileGenerator(seed int64) *ProfileGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &ProfileGenerator{rnd: rand.New(rand.NewSource(seed)), now: time.Now}
}

// Generate builds a profile for e: a bio, six months of history, 3-7 projects and 4-9 feedback entries.
func (g *ProfileGenerator) Generate(e domain.Employee) domain.EmployeeProfile {
	g.mu.Lock()
	defer g.mu.Unlock()

	field := e.Company.Department
	if field == "" {
		field = "their field"
	}
	bio := fmt.Sprintf("Experienced professional with %d years in %s. Known for %s and %s.",
		g.rnd.Intn(10)+2, field, g.pick(bioStrengths), g.pick(bioSkills))

	history := make([]domain.PerformanceEntry, len(profileMonths))
	for i, m := range profileMonths {
		history[i] = domain.PerformanceEntry{Month: m, Rating: g.rating(), Feedback: g.pick(monthlyFeedback)}
	}

	now := g.now()
	projects := make([]domain.Project, g.rnd.Intn(5)+3)
	for i := range projects {
		projects[i] = domain.Project{
			ID:       i + 1,
			Name:     g.pick(projectNames),
			Status:   g.pick(projectStatuses),
			Progress: g.rnd.Intn(100),
			Deadline: now.Add(time.Duration(g.rnd.Int63n(int64(90 * 24 * time.Hour)))).Format(profileDateLayout),
			Role:     g.pick(projectRoles),
		}
	}

	feedback := make([]domain.Feedback, g.rnd.Intn(6)+4)
	for i := range feedback {
		feedback[i] = domain.Feedback{
			ID:      i + 1,
			Type:    g.pick(feedbackTypes),
			Author:  g.pick(feedbackAuthors),
			Date:    now.Add(-time.Duration(g.rnd.Int63n(int64(365 * 24 * time.Hour)))).Format(profileDateLayout),
			Rating:  g.rating(),
			Comment: g.pick(feedbackComments),
		}
	}

	return domain.EmployeeProfile{
		Employee:           e,
		Bio:                bio,
		PerformanceHistory: history,
		Projects:           projects,
		Feedback:           feedback,
	}
}

func (g *ProfileGenerator) pick(options []string) string {
	return options[g.rnd.Intn(len(options))]
}

func (g *ProfileGenerator) rating() int {
	return g.rnd.Intn(5) + 1
}

// PromotionNotice is the confirmation shown after promoting e.
func PromotionNotice(e domain.Employee) string {
	return fmt.Sprintf("%s has been promoted!", e.FullName())
}
