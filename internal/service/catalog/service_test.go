package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type fakeClient struct {
	services []bookingapi.Service
	masters  []bookingapi.Master
	err      error
}

func (c *fakeClient) ListServices(context.Context) ([]bookingapi.Service, error) {
	return c.services, c.err
}

func (c *fakeClient) GetService(_ context.Context, id int64) (*bookingapi.Service, error) {
	if c.err != nil {
		return nil, c.err
	}
	for i := range c.services {
		if c.services[i].ID == id {
			return &c.services[i], nil
		}
	}
	return nil, bookingapi.ErrNotFound
}

func (c *fakeClient) ListMasters(context.Context) ([]bookingapi.Master, error) {
	return c.masters, c.err
}

func TestService_Catalog(t *testing.T) {
	client := &fakeClient{
		services: []bookingapi.Service{
			{ID: 1, Name: "Стрижка", Price: 1500, Duration: 45},
			{ID: 2, Name: "Борода", Price: 800, Duration: 30},
		},
		masters: []bookingapi.Master{{ID: 3, Username: "Пётр"}},
	}
	svc := NewService(client, logger.NewNop())
	ctx := context.Background()

	services, err := svc.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "Борода", services[1].Name)

	service, err := svc.GetService(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, &domain.Service{ID: 1, Name: "Стрижка", Price: 1500, DurationMinutes: 45}, service)

	_, err = svc.GetService(ctx, 99)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	masters, err := svc.ListMasters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*domain.Master{{ID: 3, Username: "Пётр"}}, masters)
}

func TestService_Catalog_Errors(t *testing.T) {
	ctx := context.Background()

	network := NewService(&fakeClient{err: fmt.Errorf("%w: timeout", bookingapi.ErrNetwork)}, logger.NewNop())
	_, err := network.ListServices(ctx)
	assert.ErrorIs(t, err, ErrNetwork)
	_, err = network.GetService(ctx, 1)
	assert.ErrorIs(t, err, ErrNetwork)

	broken := NewService(&fakeClient{err: bookingapi.ErrInvalidResponse}, logger.NewNop())
	_, err = broken.ListMasters(ctx)
	assert.ErrorIs(t, err, ErrInternal)
}
