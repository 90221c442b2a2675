package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/locvowork/hr_dashboard/internal/domain"
	"github.com/olivere/elastic/v7"
)

// EmployeeDoc mirrors domain.Employee for ES storage.
type EmployeeDoc struct {
	ID         int    `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Age        int    `json:"age,omitempty"`
	Image      string `json:"image,omitempty"`
	BirthDate  string `json:"birth_date,omitempty"`
	Department string `json:"department,omitempty"`
	Title      string `json:"title,omitempty"`
	City       string `json:"city,omitempty"`
	Rating     int    `json:"rating"`
}

func toEmployeeDoc(e domain.Employee) EmployeeDoc {
	return EmployeeDoc{
		ID:         e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Phone:      e.Phone,
		Age:        e.Age,
		Image:      e.Image,
		BirthDate:  e.BirthDate,
		Department: e.Company.Department,
		Title:      e.Company.Title,
		City:       e.Address.City,
		Rating:     e.Rating,
	}
}

func (d EmployeeDoc) toDomain() domain.Employee {
	return domain.Employee{
		ID:        d.ID,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Phone:     d.Phone,
		Age:       d.Age,
		Image:     d.Image,
		BirthDate: d.BirthDate,
		Company:   domain.Company{Department: d.Department, Title: d.Title},
		Address:   domain.Address{City: d.City},
		Rating:    d.Rating,
	}
}

// ElasticSearchClient wraps olivere/elastic client.
type ElasticSearchClient struct {
	client *elastic.Client
	index  string
}

// NewElasticSearchClient creates a new client for Elasticsearch 7.x.
func NewElasticSearchClient(url, index string) (*ElasticSearchClient, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false), // Essential when using Docker or cloud
		elastic.SetHealthcheck(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	if index == "" {
		index = "employees"
	}
	return &ElasticSearchClient{client: client, index: index}, nil
}

// IndexEmployees bulk-indexes employees using their id as document id.
func (es *ElasticSearchClient) IndexEmployees(ctx context.Context, employees []domain.Employee) error {
	bulkRequest := es.client.Bulk()

	for _, emp := range employees {
		req := elastic.NewBulkIndexRequest().
			Index(es.index).
			Id(strconv.Itoa(emp.ID)).
			Doc(toEmployeeDoc(emp))
		bulkRequest = bulkRequest.Add(req)
	}

	if bulkRequest.NumberOfActions() == 0 {
		return nil
	}

	bulkResponse, err := bulkRequest.Refresh("true").Do(ctx)
	if err != nil {
		return fmt.Errorf("bulk index failed: %w", err)
	}

	if bulkResponse.Errors {
		for _, item := range bulkResponse.Items {
			for _, op := range item {
				if op.Error != nil {
					return fmt.Errorf("bulk item %s failed: %s", op.Id, op.Error.Reason)
				}
			}
		}
	}

	return nil
}

// SearchEmployees performs a fuzzy full-text match across name, email and department.
func (es *ElasticSearchClient) SearchEmployees(ctx context.Context, query string, size int) ([]domain.Employee, error) {
	if size <= 0 {
		size = 20
	}
	q := elastic.NewMultiMatchQuery(query, "first_name", "last_name", "email", "department", "title").
		Fuzziness("AUTO")

	searchResult, err := es.client.Search().
		Index(es.index).
		Query(q).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	employees := make([]domain.Employee, 0, len(searchResult.Hits.Hits))
	for _, item := range searchResult.Hits.Hits {
		var doc EmployeeDoc
		if err := json.Unmarshal(item.Source, &doc); err != nil {
			continue
		}
		employees = append(employees, doc.toDomain())
	}

	return employees, nil
}

// Clear drops the index. A missing index is not an error.
func (es *ElasticSearchClient) Clear(ctx context.Context) error {
	exists, err := es.client.IndexExists(es.index).Do(ctx)
	if err != nil {
		return fmt.Errorf("check index %s: %w", es.index, err)
	}
	if !exists {
		return nil
	}
	if _, err := es.client.DeleteIndex(es.index).Do(ctx); err != nil {
		return fmt.Errorf("delete index %s: %w", es.index, err)
	}
	return nil
}
