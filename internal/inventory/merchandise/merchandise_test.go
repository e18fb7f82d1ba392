package merchandise

import (
	"context"
	"net/http"
	"testing"

	"ims/internal/client/clientmock"
	"ims/internal/inventory"
	"ims/internal/table"
	"ims/pkg/models"
	"ims/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadAndView(t *testing.T) {
	requester := new(clientmock.Requester)
	requester.On("Request", mock.Anything, http.MethodGet, Path, nil).Return(`[
		{"MerchandiseID":1,"MerchandiseName":"Tote bag","MerchandiseQuantity":4,"MerchandiseDateAdded":"2025-04-01"},
		{"MerchandiseID":2,"MerchandiseName":"Mug","MerchandiseQuantity":30,"MerchandiseDateAdded":"2025-04-02"},
		{"MerchandiseID":3,"MerchandiseName":"Tumbler","MerchandiseQuantity":12,"MerchandiseDateAdded":"2025-04-03"}
	]`, nil)

	session := security.NewSession(security.NewMemoryStore(), zap.NewNop())
	c := table.NewController(Definition(inventory.Options{}), requester, session, zap.NewNop())
	require.NoError(t, c.Load(context.Background()))

	page := c.View(table.Criteria{})
	names := []string{}
	for _, m := range page.Items {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Mug", "Tote bag", "Tumbler"}, names)

	page = c.View(table.Criteria{Search: "t", Status: "Low Stock"})
	assert.Equal(t, []models.Merchandise{
		{ID: 1, Name: "Tote bag", Quantity: 4, DateAdded: "2025-04-01", Status: "Low Stock"},
	}, page.Items)
}

func TestRemove(t *testing.T) {
	requester := new(clientmock.Requester)
	requester.On("Request", mock.Anything, http.MethodGet, Path, nil).
		Return(`[{"MerchandiseID":5,"MerchandiseName":"Mug","MerchandiseQuantity":30}]`, nil).Once()
	requester.On("Request", mock.Anything, http.MethodDelete, "/merchandise/merchandise/5", nil).Return(`null`, nil).Once()

	session := security.NewSession(security.NewMemoryStore(), zap.NewNop())
	c := table.NewController(Definition(inventory.Options{}), requester, session, zap.NewNop())
	require.NoError(t, c.Load(context.Background()))

	var prompt string
	require.NoError(t, c.Remove(context.Background(), 5, func(p string) bool { prompt = p; return true }))

	assert.Equal(t, "Are you sure you want to delete this merchandise?", prompt)
	assert.Empty(t, c.View(table.Criteria{}).Items)
	requester.AssertExpectations(t)
}
