package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/Ahogberg/handymate-dashboard-sub000/internal/dto"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/model"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/repository"
	"github.com/Ahogberg/handymate-dashboard-sub000/pkg/redis"
)

// ── external sync module business errors ──

var (
	ErrSyncDisabled      = errors.New("calendar import is disabled")
	ErrFeedNotConfigured = errors.New("no calendar feed configured")
)

const (
	feedMaxSize      = 5 * 1024 * 1024 // 5MB
	feedFetchTimeout = 30 * time.Second
)

// SyncService mirrors an external iCalendar feed into read-only schedule
// entries. Reconciliation diffs the feed against the stored external set by
// foreign UID, so running it twice against an unchanged feed is a no-op.
type SyncService interface {
	// Trigger fetches the feed and reconciles it against the store.
	Trigger(ctx context.Context) (*dto.SyncSummaryResponse, error)
	// Status reports feed connectivity and the last run outcome.
	Status(ctx context.Context) (*dto.SyncStatusResponse, error)
}

type syncService struct {
	repo     *repository.Repository
	settings SettingsService
	redis    *redis.Client // nil when redis is unavailable
	feedURL  string
	logger   *zap.Logger
}

// NewSyncService creates a SyncService.
func NewSyncService(repo *repository.Repository, settings SettingsService, rdb *redis.Client, feedURL string, logger *zap.Logger) SyncService {
	return &syncService{repo: repo, settings: settings, redis: rdb, feedURL: feedURL, logger: logger}
}

// ────────────────────── Trigger ──────────────────────

func (s *syncService) Trigger(ctx context.Context) (*dto.SyncSummaryResponse, error) {
	settings, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.ImportEnabled() {
		return nil, ErrSyncDisabled
	}
	if s.feedURL == "" {
		return nil, ErrFeedNotConfigured
	}

	summary, err := s.run(ctx)
	s.recordOutcome(ctx, err)
	if err != nil {
		s.logger.Error("calendar sync failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("calendar sync completed",
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("removed", summary.Removed))
	return summary, nil
}

func (s *syncService) run(ctx context.Context) (*dto.SyncSummaryResponse, error) {
	body, err := fetchFeed(s.feedURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	events, err := parseFeed(body)
	if err != nil {
		return nil, err
	}

	return s.reconcile(ctx, events)
}

// recordOutcome persists the run result so Status survives restarts. A nil
// redis client degrades to in-process logging only.
func (s *syncService) recordOutcome(ctx context.Context, runErr error) {
	if s.redis == nil {
		return
	}
	now := time.Now()
	status := redis.SyncStatus{LastSyncAt: &now}
	if runErr != nil {
		status.LastError = runErr.Error()
	}
	if err := s.redis.SetSyncStatus(ctx, status); err != nil {
		s.logger.Warn("store sync status failed", zap.Error(err))
	}
}

// ────────────────────── Status ──────────────────────

func (s *syncService) Status(ctx context.Context) (*dto.SyncStatusResponse, error) {
	resp := &dto.SyncStatusResponse{Connected: s.feedURL != ""}
	if s.redis == nil {
		return resp, nil
	}

	status, err := s.redis.GetSyncStatus(ctx)
	if err != nil {
		s.logger.Warn("load sync status failed", zap.Error(err))
		return resp, nil
	}
	if status.LastSyncAt != nil {
		last := status.LastSyncAt.Format(dto.DateTimeLayout)
		resp.LastSyncAt = &last
	}
	if status.LastError != "" {
		resp.Connected = false
		resp.LastError = &status.LastError
	}
	return resp, nil
}

// ────────────────────── reconciliation ──────────────────────

// feedEvent is the normalized VEVENT shape used for the diff.
type feedEvent struct {
	UID    string
	Title  string
	Start  time.Time
	End    time.Time
	AllDay bool
}

// reconcile diffs the feed against the stored external entries. Mirrored
// entries are attached to the team owner.
func (s *syncService) reconcile(ctx context.Context, events []feedEvent) (*dto.SyncSummaryResponse, error) {
	owner, err := s.repo.Member.GetOwner(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve feed owner: %w", err)
	}

	existing, err := s.repo.Entry.ListExternal(ctx)
	if err != nil {
		return nil, err
	}
	byUID := make(map[string]*model.ScheduleEntry, len(existing))
	for i := range existing {
		if existing[i].ForeignUID != nil {
			byUID[*existing[i].ForeignUID] = &existing[i]
		}
	}

	summary := &dto.SyncSummaryResponse{}
	seen := make(map[string]bool, len(events))

	for _, evt := range events {
		if evt.UID == "" || seen[evt.UID] {
			continue
		}
		seen[evt.UID] = true

		current, ok := byUID[evt.UID]
		if !ok {
			uid := evt.UID
			entry := &model.ScheduleEntry{
				MemberID:   owner.MemberID,
				Title:      evt.Title,
				StartAt:    evt.Start,
				EndAt:      evt.End,
				AllDay:     evt.AllDay,
				EntryType:  model.EntryTypeExternal,
				Status:     model.EntryStatusScheduled,
				Source:     model.EntrySourceExternal,
				ForeignUID: &uid,
			}
			if err := s.repo.Entry.Create(ctx, entry); err != nil {
				return nil, err
			}
			summary.Created++
			continue
		}

		if current.Title == evt.Title &&
			current.StartAt.Equal(evt.Start) &&
			current.EndAt.Equal(evt.End) &&
			current.AllDay == evt.AllDay {
			continue
		}
		current.Title = evt.Title
		current.StartAt = evt.Start
		current.EndAt = evt.End
		current.AllDay = evt.AllDay
		if err := s.repo.Entry.Update(ctx, current); err != nil {
			return nil, err
		}
		summary.Updated++
	}

	var stale []string
	for uid, entry := range byUID {
		if !seen[uid] {
			stale = append(stale, entry.EntryID)
		}
	}
	if len(stale) > 0 {
		if err := s.repo.Entry.DeleteBatch(ctx, stale); err != nil {
			return nil, err
		}
		summary.Removed = len(stale)
	}

	return summary, nil
}

// ────────────────────── feed fetch / parse ──────────────────────

// fetchFeed downloads the feed, rewriting webcal URLs and capping the body
// size so a misbehaving server cannot exhaust memory.
func fetchFeed(rawURL string) (io.ReadCloser, error) {
	u := rawURL
	if strings.HasPrefix(u, "webcal://") {
		u = "https://" + strings.TrimPrefix(u, "webcal://")
	}

	client := &http.Client{Timeout: feedFetchTimeout}
	resp, err := client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar feed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch calendar feed: HTTP %d", resp.StatusCode)
	}
	return struct {
		io.Reader
		io.Closer
	}{
		Reader: io.LimitReader(resp.Body, feedMaxSize),
		Closer: resp.Body,
	}, nil
}

// parseFeed parses an iCalendar stream into feed events. Events without a
// UID or a parseable DTSTART are skipped rather than failing the run.
func parseFeed(r io.Reader) ([]feedEvent, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parse calendar feed: %w", err)
	}

	var events []feedEvent
	for _, comp := range cal.Events() {
		evt, ok := parseVEvent(comp)
		if !ok {
			continue
		}
		events = append(events, evt)
	}
	return events, nil
}

func parseVEvent(ve *ics.VEvent) (feedEvent, bool) {
	uidProp := ve.GetProperty(ics.ComponentPropertyUniqueId)
	if uidProp == nil || strings.TrimSpace(uidProp.Value) == "" {
		return feedEvent{}, false
	}

	title := "(untitled)"
	if p := ve.GetProperty(ics.ComponentPropertySummary); p != nil && strings.TrimSpace(p.Value) != "" {
		title = strings.TrimSpace(p.Value)
	}

	startProp := ve.GetProperty(ics.ComponentPropertyDtStart)
	if startProp == nil {
		return feedEvent{}, false
	}
	start, err := parseFeedTime(startProp.Value)
	if err != nil {
		return feedEvent{}, false
	}

	allDay := isDateOnly(startProp)

	end := start
	if endProp := ve.GetProperty(ics.ComponentPropertyDtEnd); endProp != nil {
		if t, err := parseFeedTime(endProp.Value); err == nil {
			end = t
		}
	}
	if allDay {
		// DTEND on all-day events is exclusive; store the inclusive last day
		if end.After(start) {
			end = end.AddDate(0, 0, -1)
		}
	} else if !end.After(start) {
		end = start.Add(time.Hour)
	}

	return feedEvent{
		UID:    strings.TrimSpace(uidProp.Value),
		Title:  title,
		Start:  start,
		End:    end,
		AllDay: allDay,
	}, true
}

// isDateOnly reports whether a DTSTART carries a date with no time part.
func isDateOnly(prop *ics.IANAProperty) bool {
	if vs, ok := prop.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(prop.Value, "T")
}

// parseFeedTime reads an ICS date or date-time as a naive local wall-clock
// value. UTC markers are stripped rather than converted; the service treats
// all timestamps as zoneless.
func parseFeedTime(v string) (time.Time, error) {
	v = strings.TrimSpace(strings.TrimSuffix(v, "Z"))
	for _, layout := range []string{"20060102T150405", "20060102"} {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable feed time %q", v)
}
