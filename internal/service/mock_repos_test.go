package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/Ahogberg/handymate-dashboard-sub000/config"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/calendar"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/model"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/repository"
)

// ── mock repositories ──

type mockMemberRepo struct {
	members map[string]*model.TeamMember
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{members: make(map[string]*model.TeamMember)}
}

func (m *mockMemberRepo) add(member *model.TeamMember) *model.TeamMember {
	if member.MemberID == "" {
		member.MemberID = fmt.Sprintf("member-%d", len(m.members)+1)
	}
	m.members[member.MemberID] = member
	return member
}

func (m *mockMemberRepo) GetByID(_ context.Context, id string) (*model.TeamMember, error) {
	if mem, ok := m.members[id]; ok {
		return mem, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) GetByEmail(_ context.Context, email string) (*model.TeamMember, error) {
	for _, mem := range m.members {
		if mem.Email == email {
			return mem, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) List(_ context.Context) ([]model.TeamMember, error) {
	out := make([]model.TeamMember, 0, len(m.members))
	for _, mem := range m.members {
		out = append(out, *mem)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockMemberRepo) ListSchedulable(_ context.Context) ([]model.TeamMember, error) {
	var out []model.TeamMember
	for _, mem := range m.members {
		if mem.IsSchedulable() {
			out = append(out, *mem)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockMemberRepo) GetOwner(_ context.Context) (*model.TeamMember, error) {
	for _, mem := range m.members {
		if mem.Role == model.RoleOwner {
			return mem, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) Update(_ context.Context, member *model.TeamMember) error {
	m.members[member.MemberID] = member
	return nil
}

type mockProjectRepo struct {
	projects map[string]*model.Project
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[string]*model.Project)}
}

func (m *mockProjectRepo) add(p *model.Project) *model.Project {
	if p.ProjectID == "" {
		p.ProjectID = fmt.Sprintf("project-%d", len(m.projects)+1)
	}
	m.projects[p.ProjectID] = p
	return p
}

func (m *mockProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	if p, ok := m.projects[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type mockEntryRepo struct {
	entries map[string]*model.ScheduleEntry
	nextID  int
}

func newMockEntryRepo() *mockEntryRepo {
	return &mockEntryRepo{entries: make(map[string]*model.ScheduleEntry)}
}

func (m *mockEntryRepo) Create(_ context.Context, entry *model.ScheduleEntry) error {
	if entry.EntryID == "" {
		m.nextID++
		entry.EntryID = fmt.Sprintf("entry-%d", m.nextID)
	}
	cp := *entry
	m.entries[entry.EntryID] = &cp
	return nil
}

func (m *mockEntryRepo) GetByID(_ context.Context, id string) (*model.ScheduleEntry, error) {
	if e, ok := m.entries[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEntryRepo) ListWindow(_ context.Context, start, end time.Time, memberIDs []string) ([]model.ScheduleEntry, error) {
	wanted := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		wanted[id] = true
	}
	var out []model.ScheduleEntry
	for _, e := range m.entries {
		if len(wanted) > 0 && !wanted[e.MemberID] {
			continue
		}
		s, eEnd := e.EffectiveSpan()
		if calendar.Overlaps(s, eEnd, start, end) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartAt.Equal(out[j].StartAt) {
			return out[i].StartAt.Before(out[j].StartAt)
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

func (m *mockEntryRepo) ListExternal(_ context.Context) ([]model.ScheduleEntry, error) {
	var out []model.ScheduleEntry
	for _, e := range m.entries {
		if e.Source == model.EntrySourceExternal {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *mockEntryRepo) Update(_ context.Context, entry *model.ScheduleEntry) error {
	if _, ok := m.entries[entry.EntryID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *entry
	m.entries[entry.EntryID] = &cp
	return nil
}

func (m *mockEntryRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.entries[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *mockEntryRepo) DeleteBatch(_ context.Context, ids []string) error {
	for _, id := range ids {
		delete(m.entries, id)
	}
	return nil
}

type mockTimeOffRepo struct {
	requests map[string]*model.TimeOffRequest
	nextID   int
	// consumed by the next Update call, then cleared
	updateErr error
}

func newMockTimeOffRepo() *mockTimeOffRepo {
	return &mockTimeOffRepo{requests: make(map[string]*model.TimeOffRequest)}
}

func (m *mockTimeOffRepo) Create(_ context.Context, req *model.TimeOffRequest) error {
	if req.RequestID == "" {
		m.nextID++
		req.RequestID = fmt.Sprintf("request-%d", m.nextID)
	}
	cp := *req
	m.requests[req.RequestID] = &cp
	return nil
}

func (m *mockTimeOffRepo) GetByID(_ context.Context, id string) (*model.TimeOffRequest, error) {
	if r, ok := m.requests[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeOffRepo) List(_ context.Context, status, memberID string) ([]model.TimeOffRequest, error) {
	var out []model.TimeOffRequest
	for _, r := range m.requests {
		if status != "" && r.Status != status {
			continue
		}
		if memberID != "" && r.MemberID != memberID {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestID < out[j].RequestID })
	return out, nil
}

func (m *mockTimeOffRepo) Update(_ context.Context, req *model.TimeOffRequest) error {
	if m.updateErr != nil {
		err := m.updateErr
		m.updateErr = nil
		return err
	}
	if _, ok := m.requests[req.RequestID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *req
	m.requests[req.RequestID] = &cp
	return nil
}

type mockSettingsRepo struct {
	settings *model.ScheduleSettings
}

// newMockSettingsRepo starts empty; the settings service seeds the row from
// configuration on the first read.
func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{}
}

func (m *mockSettingsRepo) Get(_ context.Context) (*model.ScheduleSettings, error) {
	if m.settings == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m.settings
	return &cp, nil
}

func (m *mockSettingsRepo) Create(_ context.Context, settings *model.ScheduleSettings) error {
	cp := *settings
	m.settings = &cp
	return nil
}

func (m *mockSettingsRepo) Update(_ context.Context, settings *model.ScheduleSettings) error {
	cp := *settings
	m.settings = &cp
	return nil
}

// ── fixtures ──

type testRepos struct {
	repo     *repository.Repository
	members  *mockMemberRepo
	projects *mockProjectRepo
	entries  *mockEntryRepo
	timeOff  *mockTimeOffRepo
	settings *mockSettingsRepo
}

func newTestRepos() *testRepos {
	tr := &testRepos{
		members:  newMockMemberRepo(),
		projects: newMockProjectRepo(),
		entries:  newMockEntryRepo(),
		timeOff:  newMockTimeOffRepo(),
		settings: newMockSettingsRepo(),
	}
	tr.repo = &repository.Repository{
		Member:   tr.members,
		Project:  tr.projects,
		Entry:    tr.entries,
		TimeOff:  tr.timeOff,
		Settings: tr.settings,
	}
	return tr
}

func testScheduleDefaults() *config.ScheduleConfig {
	return &config.ScheduleConfig{
		CapacityHoursPerDay: 8,
		VisibleStartHour:    6,
		VisibleEndHour:      20,
		MonthCellMaxEntries: 3,
	}
}

func schedulableMember(id, name string) *model.TeamMember {
	return &model.TeamMember{
		MemberID:       id,
		Name:           name,
		Email:          id + "@example.com",
		Role:           model.RoleMember,
		Color:          "#4F46E5",
		IsActive:       true,
		InviteAccepted: true,
	}
}
