package supplies

import (
	"context"
	"net/http"
	"testing"

	"ims/internal/client"
	"ims/internal/client/clientmock"
	"ims/internal/inventory"
	"ims/internal/table"
	custom_error "ims/pkg/errors"
	"ims/pkg/models"
	"ims/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newController(requester client.Requester, opts inventory.Options) *table.Controller[models.Supply, *Form] {
	session := security.NewSession(security.NewMemoryStore(), zap.NewNop())
	return table.NewController(Definition(opts), requester, session, zap.NewNop())
}

func TestLoadDerivesOutOfStock(t *testing.T) {
	requester := new(clientmock.Requester)
	requester.On("Request", mock.Anything, http.MethodGet, Path, nil).
		Return(`[{"MaterialID":9,"MaterialName":"Cups","MaterialQuantity":0,"MaterialMeasurement":"pcs","DateAdded":"2025-05-01T10:00:00"}]`, nil)

	c := newController(requester, inventory.Options{})
	require.NoError(t, c.Load(context.Background()))

	assert.Equal(t, []models.Supply{
		{ID: 9, Name: "Cups", Quantity: 0, Measurement: "pcs", DateAdded: "2025-05-01", Status: "Out of Stock"},
	}, c.Items())
}

func TestLowStockThresholdIsConfigurable(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		expected  string
	}{
		{name: "default threshold", threshold: 0, expected: "Available"},
		{name: "raised threshold", threshold: 50, expected: "Low Stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requester := new(clientmock.Requester)
			requester.On("Request", mock.Anything, http.MethodGet, Path, nil).
				Return(`[{"MaterialID":1,"MaterialName":"Lids","MaterialQuantity":20}]`, nil)

			c := newController(requester, inventory.Options{LowStockThreshold: tt.threshold})
			require.NoError(t, c.Load(context.Background()))
			assert.Equal(t, tt.expected, c.Items()[0].Status)
		})
	}
}

func TestUpdateServerErrorKeepsItems(t *testing.T) {
	requester := new(clientmock.Requester)
	requester.On("Request", mock.Anything, http.MethodGet, Path, nil).
		Return(`[{"MaterialID":7,"MaterialName":"Cups","MaterialQuantity":40,"MaterialMeasurement":"pcs","DateAdded":"2025-05-01"}]`, nil).Once()
	requester.On("Request", mock.Anything, http.MethodPut, "/materials/materials/7", mock.Anything).
		Return(nil, &custom_error.HttpError{Status: 500, Message: "constraint violated"}).Once()

	c := newController(requester, inventory.Options{})
	require.NoError(t, c.Load(context.Background()))
	before := c.Items()

	form := c.Definition().FormOf(before[0])
	form.Quantity = "12"
	err := c.Update(context.Background(), 7, form)

	require.Error(t, err)
	assert.Equal(t, "constraint violated", custom_error.Notification(err))
	assert.Equal(t, before, c.Items())
	requester.AssertExpectations(t)
}

func TestFormBody(t *testing.T) {
	form := &Form{Name: "Straws", Quantity: "250", Measurement: "pcs", SupplyDate: "2025-05-02"}

	body, err := form.Body()
	require.NoError(t, err)

	var sent map[string]interface{}
	require.NoError(t, clientmock.Decode(body, &sent))
	assert.Equal(t, map[string]interface{}{
		"MaterialName":        "Straws",
		"MaterialQuantity":    250.0,
		"MaterialMeasurement": "pcs",
		"DateAdded":           "2025-05-02",
	}, sent)
}
