package staff

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ims/internal/client"
	"ims/internal/client/clientmock"
	"ims/internal/table"
	custom_error "ims/pkg/errors"
	"ims/pkg/models"
	"ims/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var options = Options{ImageBaseURL: "https://img.example.com/", DefaultImage: "https://img.example.com/default.png"}

func newController(requester client.Requester, session security.Session) *table.Controller[models.Employee, *Form] {
	return table.NewController(Definition(options), requester, session, zap.NewNop())
}

func newSession(t *testing.T) security.Session {
	session := security.NewSession(security.NewMemoryStore(), zap.NewNop())
	require.NoError(t, session.SetToken("token"))
	return session
}

const accounts = `[
	{"userID":1,"fullName":"Ana Reyes","username":"ana","emailAddress":"ana@example.com","userRole":"admin","phoneNumber":"0917","hireDate":"2024-01-15T00:00:00","uploadImage":"ana.png"},
	{"userID":2,"fullName":"Ben Cruz","emailAddress":"","userRole":"cashier","hireDate":null},
	{"userID":3,"fullName":"Carla Diaz","username":"carla","emailAddress":"carla@shop.ph","userRole":"manager","status":"Inactive"}
]`

func TestLoadAppliesDefaults(t *testing.T) {
	requester := new(clientmock.Requester)
	requester.On("Request", mock.Anything, http.MethodGet, "/list-employee-accounts", nil).Return(accounts, nil)

	c := newController(requester, newSession(t))
	require.NoError(t, c.Load(context.Background()))

	assert.Equal(t, []models.Employee{
		{ID: 1, FullName: "Ana Reyes", Username: "ana", Email: "ana@example.com", Role: "admin", Phone: "0917", HireDate: "2024-01-15", Status: "Active", ImageURL: "https://img.example.com/ana.png"},
		{ID: 2, FullName: "Ben Cruz", Username: "cashier", Email: "N/A", Role: "cashier", Phone: "N/A", Status: "Active", ImageURL: "https://img.example.com/default.png"},
		{ID: 3, FullName: "Carla Diaz", Username: "carla", Email: "carla@shop.ph", Role: "manager", Phone: "N/A", Status: "Inactive", ImageURL: "https://img.example.com/default.png"},
	}, c.Items())
}

func TestViewSearchesNameAndEmail(t *testing.T) {
	requester := new(clientmock.Requester)
	requester.On("Request", mock.Anything, http.MethodGet, "/list-employee-accounts", nil).Return(accounts, nil)

	c := newController(requester, newSession(t))
	require.NoError(t, c.Load(context.Background()))

	ids := func(page table.Page[models.Employee]) []int {
		out := []int{}
		for _, e := range page.Items {
			out = append(out, e.ID)
		}
		return out
	}

	assert.Equal(t, []int{3}, ids(c.View(table.Criteria{Search: "SHOP.PH"})))
	assert.Equal(t, []int{2}, ids(c.View(table.Criteria{Search: "ben"})))
	assert.Equal(t, []int{2}, ids(c.View(table.Criteria{Filters: map[string]string{"role": "cashier"}})))
	assert.Equal(t, []int{1, 2}, ids(c.View(table.Criteria{Status: "Active"})))
	assert.Equal(t, []int{3, 2, 1}, ids(c.View(table.Criteria{SortKey: "name", Descending: true})))
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name     string
		update   bool
		form     Form
		expected map[string]string
	}{
		{
			name:     "cashier passcode with letters",
			form:     Form{Name: "Ben", Email: "ben@example.com", Role: "cashier", Password: "12a456"},
			expected: map[string]string{"password": MessagePasscode},
		},
		{
			name:     "cashier passcode too long",
			form:     Form{Name: "Ben", Email: "ben@example.com", Role: "cashier", Password: "1234567"},
			expected: map[string]string{"password": MessagePasscode},
		},
		{
			name:     "cashier passcode required on update",
			update:   true,
			form:     Form{Name: "Ben", Email: "ben@example.com", Role: "cashier"},
			expected: map[string]string{"password": MessagePasscode},
		},
		{
			name:     "admin needs username and password",
			form:     Form{Name: "Ana", Email: "ana@example.com", Role: "admin"},
			expected: map[string]string{"username": "This field is required", "password": "This field is required"},
		},
		{
			name:     "manager may keep password on update",
			update:   true,
			form:     Form{Name: "Carla", Email: "carla@example.com", Role: "manager", Username: "carla"},
			expected: map[string]string{},
		},
		{
			name:     "short manager password",
			update:   true,
			form:     Form{Name: "Carla", Email: "carla@example.com", Role: "manager", Username: "carla", Password: "abc"},
			expected: map[string]string{"password": "Must be at least 6 characters long"},
		},
		{
			name:     "missing basics",
			form:     Form{Role: "owner", Phone: "call me", HireDate: "soon"},
			expected: map[string]string{"name": "This field is required", "email": "This field is required", "role": "Must be one of: admin, manager, cashier", "phone": "Must be a valid phone number", "hireDate": "Must be a valid date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requester := new(clientmock.Requester)
			requester.On("Request", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(`[]`, nil)
			c := newController(requester, newSession(t))

			form := tt.form
			var err error
			if tt.update {
				err = c.Update(context.Background(), 1, &form)
			} else {
				err = c.Create(context.Background(), &form)
			}

			if len(tt.expected) == 0 {
				assert.NoError(t, err)
				return
			}
			var validationErr *custom_error.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.expected, validationErr.Fields)
			requester.AssertNotCalled(t, "Request", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func parseMultipart(t *testing.T, body client.Body) *http.Request {
	t.Helper()
	reader, contentType, err := body.Encode()
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/create", reader)
	req.Header.Set("Content-Type", contentType)
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req
}

func TestCashierBodyUsesSharedUsername(t *testing.T) {
	form := &Form{Name: "Ben Cruz", Email: "ben@example.com", Role: "cashier", Username: "ignored", Password: "123456", Phone: "N/A"}
	form.Attach("photo", &client.Upload{Filename: "ben.png", Content: []byte("png")})

	body, err := form.Body()
	require.NoError(t, err)
	req := parseMultipart(t, body)

	assert.Equal(t, "Ben Cruz", req.FormValue("fullName"))
	assert.Equal(t, "cashier", req.FormValue("userRole"))
	assert.Equal(t, "ben@example.com", req.FormValue("emailAddress"))
	assert.Equal(t, "cashier", req.FormValue("username"))
	assert.Equal(t, "123456", req.FormValue("password"))
	assert.NotContains(t, req.MultipartForm.Value, "phoneNumber")
	assert.NotContains(t, req.MultipartForm.Value, "hireDate")
	assert.Contains(t, req.MultipartForm.File, "uploadImage")
}

func TestManagerBodyWithoutPassword(t *testing.T) {
	form := &Form{Name: "Carla Diaz", Email: "carla@shop.ph", Role: "manager", Username: "carla", Phone: "0917", HireDate: "2024-02-01"}

	body, err := form.Body()
	require.NoError(t, err)
	req := parseMultipart(t, body)

	assert.Equal(t, "carla", req.FormValue("username"))
	assert.Equal(t, "0917", req.FormValue("phoneNumber"))
	assert.Equal(t, "2024-02-01", req.FormValue("hireDate"))
	assert.NotContains(t, req.MultipartForm.Value, "password")
	assert.Empty(t, req.MultipartForm.File)
}

func TestRemoveWithExpiredSessionClearsToken(t *testing.T) {
	requester := new(clientmock.Requester)
	requester.On("Request", mock.Anything, http.MethodGet, "/list-employee-accounts", nil).Return(accounts, nil).Once()
	requester.On("Request", mock.Anything, http.MethodDelete, "/delete/3", nil).Return(nil, &custom_error.SessionExpiredError{}).Once()

	session := newSession(t)
	c := newController(requester, session)
	require.NoError(t, c.Load(context.Background()))

	err := c.Remove(context.Background(), 3, func(string) bool { return true })

	var expired *custom_error.SessionExpiredError
	assert.True(t, errors.As(err, &expired))
	_, ok := session.Token()
	assert.False(t, ok)
	assert.Len(t, c.Items(), 3)
}

func TestFormOf(t *testing.T) {
	form := formOf(models.Employee{ID: 2, FullName: "Ben Cruz", Username: "cashier", Email: "N/A", Role: "cashier", Phone: "N/A"})
	assert.Equal(t, &Form{Name: "Ben Cruz", Role: "cashier"}, form)

	form = formOf(models.Employee{ID: 1, FullName: "Ana Reyes", Username: "ana", Email: "ana@example.com", Role: "admin", Phone: "0917", HireDate: "2024-01-15"})
	assert.Equal(t, &Form{Name: "Ana Reyes", Username: "ana", Email: "ana@example.com", Role: "admin", Phone: "0917", HireDate: "2024-01-15"}, form)
}
