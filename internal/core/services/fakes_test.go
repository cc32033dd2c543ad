package services

import (
	"context"
	"sort"
	"strings"

	"hdb-bto-portal/internal/adapters/persistence/models"
	"hdb-bto-portal/internal/core/domain"

	"gorm.io/gorm"
)

// In-memory repositories backing the service tests. They return copies so a
// caller's mutations only land after an explicit Save, matching the store's
// read-then-write contract.

type fakeUserRepo struct {
	users  map[string]*models.User // keyed by NRIC
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User), nextID: 1}
}

func (r *fakeUserRepo) add(user *models.User) *models.User {
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	}
	if user.Application.AppliedProjectID == 0 && user.Application.Status == "" {
		user.Application.Reset()
	}
	cp := *user
	r.users[user.NRIC] = &cp
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByNRIC(_ context.Context, nric string) (*models.User, error) {
	u, ok := r.users[strings.ToUpper(nric)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role domain.Role) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Save(_ context.Context, user *models.User) error {
	cp := *user
	r.users[user.NRIC] = &cp
	return nil
}

func (r *fakeUserRepo) ExistsByNRIC(_ context.Context, nric string) (bool, error) {
	_, ok := r.users[strings.ToUpper(nric)]
	return ok, nil
}

func (r *fakeUserRepo) CountBooked(_ context.Context, projectID int, flatType string) (int64, error) {
	var count int64
	for _, u := range r.users {
		if u.Application.Status == domain.StatusBooked &&
			u.Application.AppliedProjectID == projectID &&
			domain.FlatTypeEquals(u.Application.AppliedFlatType, flatType) {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) ListByAppliedProject(_ context.Context, projectID int) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		if u.Application.AppliedProjectID == projectID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListByStatus(_ context.Context, status domain.ApplicationStatus) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		if u.Application.Status == status {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeProjectRepo struct {
	projects map[int]*models.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[int]*models.Project)}
}

func (r *fakeProjectRepo) add(project *models.Project) *models.Project {
	cp := *project
	r.projects[project.ID] = &cp
	return project
}

func (r *fakeProjectRepo) Create(_ context.Context, project *models.Project) error {
	r.add(project)
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id int) (*models.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProjectRepo) sortedIDs() []int {
	ids := make([]int, 0, len(r.projects))
	for id := range r.projects {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (r *fakeProjectRepo) GetAll(_ context.Context) ([]*models.Project, error) {
	out := make([]*models.Project, 0, len(r.projects))
	for _, id := range r.sortedIDs() {
		cp := *r.projects[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProjectRepo) ListVisible(_ context.Context) ([]*models.Project, error) {
	var out []*models.Project
	for _, id := range r.sortedIDs() {
		if r.projects[id].Visible {
			cp := *r.projects[id]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) ListByManager(_ context.Context, managerNRIC string) ([]*models.Project, error) {
	var out []*models.Project
	for _, id := range r.sortedIDs() {
		if r.projects[id].ManagerNRIC == managerNRIC {
			cp := *r.projects[id]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) Save(_ context.Context, project *models.Project) error {
	cp := *project
	r.projects[project.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) NextID(_ context.Context) (int, error) {
	return len(r.projects) + 1, nil
}

func (r *fakeProjectRepo) ReserveUnit(_ context.Context, projectID int, flatType string) error {
	p, ok := r.projects[projectID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	switch {
	case domain.FlatTypeEquals(p.Type1Desc, flatType):
		if p.Type1Units <= 0 {
			return domain.ErrNoUnitsLeft
		}
		p.Type1Units--
	case domain.FlatTypeEquals(p.Type2Desc, flatType):
		if p.Type2Units <= 0 {
			return domain.ErrNoUnitsLeft
		}
		p.Type2Units--
	default:
		return domain.ErrUnknownFlatType
	}
	return nil
}

func (r *fakeProjectRepo) ReleaseUnit(_ context.Context, projectID int, flatType string) error {
	p, ok := r.projects[projectID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	switch {
	case domain.FlatTypeEquals(p.Type1Desc, flatType):
		p.Type1Units++
	case domain.FlatTypeEquals(p.Type2Desc, flatType):
		p.Type2Units++
	default:
		return domain.ErrUnknownFlatType
	}
	return nil
}

func (r *fakeProjectRepo) DeleteAndRenumber(_ context.Context, projectID int) error {
	if _, ok := r.projects[projectID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.projects, projectID)

	mapping := domain.RenumberIDs(r.sortedIDs())
	renumbered := make(map[int]*models.Project, len(r.projects))
	for old, p := range r.projects {
		p.ID = mapping[old]
		renumbered[p.ID] = p
	}
	r.projects = renumbered
	return nil
}

type fakeRegistrationRepo struct {
	regs   map[uint]*models.OfficerRegistration
	nextID uint
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{regs: make(map[uint]*models.OfficerRegistration), nextID: 1}
}

func (r *fakeRegistrationRepo) add(reg *models.OfficerRegistration) *models.OfficerRegistration {
	if reg.ID == 0 {
		reg.ID = r.nextID
		r.nextID++
	}
	cp := *reg
	r.regs[reg.ID] = &cp
	return reg
}

func (r *fakeRegistrationRepo) Create(_ context.Context, reg *models.OfficerRegistration) error {
	r.add(reg)
	return nil
}

func (r *fakeRegistrationRepo) GetByID(_ context.Context, id uint) (*models.OfficerRegistration, error) {
	reg, ok := r.regs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *reg
	return &cp, nil
}

func (r *fakeRegistrationRepo) GetByOfficerAndProject(_ context.Context, officerNRIC string, projectID int) (*models.OfficerRegistration, error) {
	for _, reg := range r.regs {
		if reg.OfficerNRIC == officerNRIC && reg.ProjectID == projectID {
			cp := *reg
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRegistrationRepo) ListByOfficer(_ context.Context, officerNRIC string, status domain.RegistrationStatus) ([]*models.OfficerRegistration, error) {
	var out []*models.OfficerRegistration
	for _, reg := range r.regs {
		if reg.OfficerNRIC == officerNRIC && reg.Status == status {
			cp := *reg
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) ListAllByOfficer(_ context.Context, officerNRIC string) ([]*models.OfficerRegistration, error) {
	var out []*models.OfficerRegistration
	for _, reg := range r.regs {
		if reg.OfficerNRIC == officerNRIC {
			cp := *reg
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) ListByProject(_ context.Context, projectID int, status domain.RegistrationStatus) ([]*models.OfficerRegistration, error) {
	var out []*models.OfficerRegistration
	for _, reg := range r.regs {
		if reg.ProjectID == projectID && reg.Status == status {
			cp := *reg
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) ListAllByProject(_ context.Context, projectID int) ([]*models.OfficerRegistration, error) {
	var out []*models.OfficerRegistration
	for _, reg := range r.regs {
		if reg.ProjectID == projectID {
			cp := *reg
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) CountByProject(_ context.Context, projectID int, statuses ...domain.RegistrationStatus) (int64, error) {
	var count int64
	for _, reg := range r.regs {
		if reg.ProjectID != projectID {
			continue
		}
		for _, status := range statuses {
			if reg.Status == status {
				count++
				break
			}
		}
	}
	return count, nil
}

func (r *fakeRegistrationRepo) Save(_ context.Context, reg *models.OfficerRegistration) error {
	cp := *reg
	r.regs[reg.ID] = &cp
	return nil
}

type fakeEnquiryRepo struct {
	enquiries map[uint]*models.Enquiry
	nextID    uint
}

func newFakeEnquiryRepo() *fakeEnquiryRepo {
	return &fakeEnquiryRepo{enquiries: make(map[uint]*models.Enquiry), nextID: 1}
}

func (r *fakeEnquiryRepo) Create(_ context.Context, enquiry *models.Enquiry) error {
	if enquiry.ID == 0 {
		enquiry.ID = r.nextID
		r.nextID++
	}
	cp := *enquiry
	r.enquiries[enquiry.ID] = &cp
	return nil
}

func (r *fakeEnquiryRepo) GetByID(_ context.Context, id uint) (*models.Enquiry, error) {
	e, ok := r.enquiries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEnquiryRepo) ListByUser(_ context.Context, userNRIC string) ([]*models.Enquiry, error) {
	var out []*models.Enquiry
	for _, e := range r.enquiries {
		if e.UserNRIC == userNRIC {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeEnquiryRepo) ListByProjects(_ context.Context, projectIDs []int) ([]*models.Enquiry, error) {
	wanted := make(map[int]bool, len(projectIDs))
	for _, id := range projectIDs {
		wanted[id] = true
	}
	var out []*models.Enquiry
	for _, e := range r.enquiries {
		if wanted[e.ProjectID] {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeEnquiryRepo) Save(_ context.Context, enquiry *models.Enquiry) error {
	cp := *enquiry
	r.enquiries[enquiry.ID] = &cp
	return nil
}

func (r *fakeEnquiryRepo) Delete(_ context.Context, id uint) error {
	delete(r.enquiries, id)
	return nil
}
