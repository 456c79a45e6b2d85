package clinic

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentique/clinic-api/internal/model"
	"github.com/dentique/clinic-api/pkg/cache"
	"github.com/dentique/clinic-api/pkg/metrics"
)

var testMetrics = metrics.New("clinic_content_test")

// mapCache is an in-memory Cache used to observe read-through behavior.
type mapCache struct {
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (c *mapCache) Get(ctx context.Context, key string, dest interface{}) error {
	payload, ok := c.data[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(payload, dest)
}

func (c *mapCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = payload
	return nil
}

func (c *mapCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *mapCache) Close() error { return nil }

type fakeInfoRepo struct {
	info *model.ClinicInfo
	gets int
}

func (f *fakeInfoRepo) Get(ctx context.Context) (*model.ClinicInfo, error) {
	f.gets++
	if f.info == nil {
		return nil, fmt.Errorf("clinic info not found")
	}
	return f.info, nil
}

func (f *fakeInfoRepo) Update(ctx context.Context, info *model.ClinicInfo) error {
	f.info = info
	return nil
}

type fakeServiceRepo struct {
	services []*model.Service
}

func (f *fakeServiceRepo) Create(ctx context.Context, s *model.Service) error {
	f.services = append(f.services, s)
	return nil
}
func (f *fakeServiceRepo) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	for _, s := range f.services {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("service not found")
}
func (f *fakeServiceRepo) Update(ctx context.Context, s *model.Service) error { return nil }
func (f *fakeServiceRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }
func (f *fakeServiceRepo) List(ctx context.Context, activeOnly bool) ([]*model.Service, error) {
	if !activeOnly {
		return f.services, nil
	}
	var active []*model.Service
	for _, s := range f.services {
		if s.IsActive {
			active = append(active, s)
		}
	}
	return active, nil
}

type fakeEventRepo struct {
	events []*model.Event
}

func (f *fakeEventRepo) Create(ctx context.Context, e *model.Event) error {
	f.events = append(f.events, e)
	return nil
}
func (f *fakeEventRepo) Get(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	return nil, fmt.Errorf("event not found")
}
func (f *fakeEventRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeEventRepo) List(ctx context.Context, publicOnly bool) ([]*model.Event, error) {
	if !publicOnly {
		return f.events, nil
	}
	var public []*model.Event
	for _, e := range f.events {
		if e.IsPublic {
			public = append(public, e)
		}
	}
	return public, nil
}

func newTestService(infoRepo *fakeInfoRepo, serviceRepo *fakeServiceRepo, eventRepo *fakeEventRepo, c cache.Cache) *Service {
	return NewService(infoRepo, serviceRepo, eventRepo, c, time.Minute, testMetrics)
}

func TestInfoIsCached(t *testing.T) {
	infoRepo := &fakeInfoRepo{info: &model.ClinicInfo{ID: uuid.New(), Name: "Dentique"}}
	svc := newTestService(infoRepo, &fakeServiceRepo{}, &fakeEventRepo{}, newMapCache())
	ctx := context.Background()

	info, err := svc.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dentique", info.Name)

	_, err = svc.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, infoRepo.gets)
}

func TestUpdateInfoInvalidatesCache(t *testing.T) {
	infoRepo := &fakeInfoRepo{info: &model.ClinicInfo{ID: uuid.New(), Name: "Dentique"}}
	svc := newTestService(infoRepo, &fakeServiceRepo{}, &fakeEventRepo{}, newMapCache())
	ctx := context.Background()

	_, err := svc.Info(ctx)
	require.NoError(t, err)

	newName := "Dentique Dental"
	_, err = svc.UpdateInfo(ctx, &model.UpdateClinicInfoRequest{Name: &newName})
	require.NoError(t, err)

	info, err := svc.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dentique Dental", info.Name)
}

func TestListServicesPublicFiltersInactive(t *testing.T) {
	serviceRepo := &fakeServiceRepo{services: []*model.Service{
		{Base: model.Base{ID: uuid.New()}, Name: "Cleaning", IsActive: true},
		{Base: model.Base{ID: uuid.New()}, Name: "Retired", IsActive: false},
	}}
	svc := newTestService(&fakeInfoRepo{}, serviceRepo, &fakeEventRepo{}, newMapCache())
	ctx := context.Background()

	public, err := svc.ListServices(ctx, true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Cleaning", public[0].Name)

	all, err := svc.ListServices(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCreateEventValidatesDate(t *testing.T) {
	svc := newTestService(&fakeInfoRepo{}, &fakeServiceRepo{}, &fakeEventRepo{}, newMapCache())

	_, err := svc.CreateEvent(context.Background(), &model.CreateEventRequest{
		Title:     "Open House",
		EventDate: "03/10/2026",
	})
	require.Error(t, err)

	event, err := svc.CreateEvent(context.Background(), &model.CreateEventRequest{
		Title:     "Open House",
		EventDate: "2026-10-03",
		IsPublic:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-03", event.EventDate)
}

func TestPublicEventsExcludePrivate(t *testing.T) {
	eventRepo := &fakeEventRepo{events: []*model.Event{
		{ID: uuid.New(), Title: "Open House", IsPublic: true},
		{ID: uuid.New(), Title: "Staff Meeting", IsPublic: false},
	}}
	svc := newTestService(&fakeInfoRepo{}, &fakeServiceRepo{}, eventRepo, newMapCache())

	public, err := svc.ListEvents(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Open House", public[0].Title)
}
