// Package memory - репозитории в памяти для тестов сервисов и хендлеров.
// Поведение повторяет postgres-реализации: nil, nil для отсутствующих записей,
// тот же порядок выдачи.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"rope-coach/internal/models"
)

type Students struct {
	mu       sync.Mutex
	Items    map[string]models.Student
	Exams    []models.RankExamRecord
	FailWith error
}

func NewStudents(students ...models.Student) *Students {
	r := &Students{Items: make(map[string]models.Student)}
	for _, s := range students {
		r.Items[s.ID] = s
	}
	return r
}

func (r *Students) Upsert(_ context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	r.Items[student.ID] = *student
	return nil
}

func (r *Students) GetByID(_ context.Context, id string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.Items[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *Students) GetAll(_ context.Context) ([]models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Student, 0, len(r.Items))
	for _, s := range r.Items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Students) GetByIDs(_ context.Context, ids []string) ([]models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Student{}
	seen := make(map[string]bool)
	for _, id := range ids {
		if s, ok := r.Items[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Students) UpdateRank(_ context.Context, id string, rank int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.Items[id]
	if !ok {
		return fmt.Errorf("student %s: %w", id, models.ErrStudentNotFound)
	}
	s.CurrentRank = &rank
	r.Items[id] = s
	return nil
}

func (r *Students) CreateRankExam(_ context.Context, exam *models.RankExamRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Exams = append(r.Exams, *exam)
	return nil
}

type Classes struct {
	Items map[string]models.ClassEntity
}

func NewClasses(classes ...models.ClassEntity) *Classes {
	r := &Classes{Items: make(map[string]models.ClassEntity)}
	for _, c := range classes {
		r.Items[c.ID] = c
	}
	return r
}

func (r *Classes) GetByID(_ context.Context, id string) (*models.ClassEntity, error) {
	c, ok := r.Items[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *Classes) GetAll(_ context.Context) ([]models.ClassEntity, error) {
	out := make([]models.ClassEntity, 0, len(r.Items))
	for _, c := range r.Items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type Templates struct {
	mu    sync.Mutex
	Items map[string]models.TrainingTemplate
}

func NewTemplates(templates ...models.TrainingTemplate) *Templates {
	r := &Templates{Items: make(map[string]models.TrainingTemplate)}
	for _, t := range templates {
		r.Items[t.ID] = t
	}
	return r
}

func (r *Templates) Upsert(_ context.Context, t *models.TrainingTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Items[t.ID] = *t
	return nil
}

func (r *Templates) GetByID(_ context.Context, id string) (*models.TrainingTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.Items[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *Templates) GetAll(_ context.Context) ([]models.TrainingTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.TrainingTemplate, 0, len(r.Items))
	for _, t := range r.Items {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Templates) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Items[id]; !ok {
		return fmt.Errorf("шаблон с ID %s не найден: %w", id, models.ErrTemplateNotFound)
	}
	delete(r.Items, id)
	return nil
}

// Sessions хранит сессии в порядке вставки, как append-only журнал
type Sessions struct {
	mu    sync.Mutex
	Items []models.SessionRecord
}

func NewSessions(sessions ...models.SessionRecord) *Sessions {
	return &Sessions{Items: append([]models.SessionRecord(nil), sessions...)}
}

func (r *Sessions) Upsert(_ context.Context, s *models.SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.Items {
		if r.Items[i].ID == s.ID {
			if r.Items[i].Closed {
				return fmt.Errorf("session %s: %w", s.ID, models.ErrSessionClosed)
			}
			r.Items[i] = *s
			return nil
		}
	}
	r.Items = append(r.Items, *s)
	return nil
}

func (r *Sessions) GetByID(_ context.Context, id string) (*models.SessionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.Items {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, nil
}

func (r *Sessions) filter(keep func(*models.SessionRecord) bool, desc bool) []models.SessionRecord {
	out := []models.SessionRecord{}
	for i := range r.Items {
		if keep(&r.Items[i]) {
			out = append(out, r.Items[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func (r *Sessions) ListByClass(_ context.Context, classID string) ([]models.SessionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(func(s *models.SessionRecord) bool { return s.ClassID == classID }, false), nil
}

func (r *Sessions) Recent(_ context.Context, limit int) ([]models.SessionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.filter(func(*models.SessionRecord) bool { return true }, true)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Sessions) ListClosed(_ context.Context) ([]models.SessionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(func(s *models.SessionRecord) bool { return s.Closed }, false), nil
}

func (r *Sessions) ListOpenByClass(_ context.Context, classID string) ([]models.SessionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(func(s *models.SessionRecord) bool { return s.ClassID == classID && !s.Closed }, true), nil
}

type Billing struct {
	mu       sync.Mutex
	Packages []models.LessonPackage
	Payments []models.PaymentRecord
	// FailPayment ломает CreatePayment, чтобы проверить откат пакета
	FailPayment error
}

func NewBilling(packages ...models.LessonPackage) *Billing {
	return &Billing{Packages: append([]models.LessonPackage(nil), packages...)}
}

func (r *Billing) CreatePackage(_ context.Context, pkg *models.LessonPackage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Packages = append(r.Packages, *pkg)
	return nil
}

func (r *Billing) DeletePackage(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.Packages {
		if p.ID == id {
			r.Packages = append(r.Packages[:i], r.Packages[i+1:]...)
			payments := r.Payments[:0]
			for _, pay := range r.Payments {
				if pay.PackageID != id {
					payments = append(payments, pay)
				}
			}
			r.Payments = payments
			return nil
		}
	}
	return fmt.Errorf("пакет с ID %s не найден", id)
}

func (r *Billing) GetPackages(_ context.Context) ([]models.LessonPackage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.LessonPackage{}, r.Packages...), nil
}

func (r *Billing) GetPackagesByStudent(_ context.Context, studentID string) ([]models.LessonPackage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.LessonPackage{}
	for _, p := range r.Packages {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *Billing) CreatePayment(_ context.Context, payment *models.PaymentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailPayment != nil {
		return r.FailPayment
	}
	r.Payments = append(r.Payments, *payment)
	return nil
}

func (r *Billing) GetPayments(_ context.Context) ([]models.PaymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.PaymentRecord{}, r.Payments...), nil
}

type Reference struct {
	Benchmarks []models.Benchmark
	Nodes      []models.WarriorPathNode
	Moves      []models.RankMove
	TestItems  []models.FitnessTestItem
}

func (r *Reference) GetBenchmarks(context.Context) ([]models.Benchmark, error) {
	return r.Benchmarks, nil
}

func (r *Reference) GetWarriorNodes(context.Context) ([]models.WarriorPathNode, error) {
	return r.Nodes, nil
}

func (r *Reference) GetRankMoves(context.Context) ([]models.RankMove, error) {
	return r.Moves, nil
}

func (r *Reference) GetTestItems(context.Context) ([]models.FitnessTestItem, error) {
	return r.TestItems, nil
}

func (r *Reference) GetTestItemByID(_ context.Context, id string) (*models.FitnessTestItem, error) {
	for _, item := range r.TestItems {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, nil
}

type Assessments struct {
	mu    sync.Mutex
	Items []models.FitnessTestResult
}

func (r *Assessments) Upsert(_ context.Context, result *models.FitnessTestResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.Items {
		if r.Items[i].ID == result.ID {
			r.Items[i] = *result
			return nil
		}
	}
	r.Items = append(r.Items, *result)
	return nil
}

func (r *Assessments) GetByStudent(_ context.Context, studentID string) ([]models.FitnessTestResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.FitnessTestResult{}
	for _, res := range r.Items {
		if res.StudentID == studentID {
			out = append(out, res)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
