package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"ims/internal/core/config"
	"ims/internal/core/container"
	"ims/pkg/security"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorded struct {
	method string
	path   string
	body   string
}

type staffService struct {
	mu       sync.Mutex
	calls    []recorded
	listDown atomic.Bool
}

func (s *staffService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.calls = append(s.calls, recorded{method: r.Method, path: r.URL.Path, body: string(body)})
	s.mu.Unlock()

	if r.Method == http.MethodGet {
		if s.listDown.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[
			{"id": 1, "fullName": "Ana Santos", "email": "ana@example.com", "role": "manager", "username": "ana", "status": "Active"},
			{"id": 2, "fullName": "Ben Cruz", "role": "cashier", "status": "Inactive"}
		]`))
		return
	}
	w.Write([]byte(`{}`))
}

func (s *staffService) methods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.calls))
	for _, call := range s.calls {
		out = append(out, call.method+" "+call.path)
	}
	return out
}

func newTestRoot(t *testing.T, store security.Store) (*staffService, func(stdin string, args ...string) (string, error)) {
	t.Helper()

	service := &staffService{}
	upstream := httptest.NewServer(service)
	t.Cleanup(upstream.Close)

	build := func() (*container.Container, error) {
		cfg := &config.Config{
			Services:       map[string]string{config.AccountsAPI: upstream.URL},
			RequestTimeout: config.DefaultRequestTimeout,
		}
		return container.NewAppContainer(cfg, store, zap.NewNop()), nil
	}

	run := func(stdin string, args ...string) (string, error) {
		root := NewRootCmd(build)
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetIn(strings.NewReader(stdin))
		root.SetArgs(args)
		err := root.Execute()
		return out.String(), err
	}

	return service, run
}

func token(t *testing.T) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "ana", "role": "admin"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return signed
}

func TestSessionCommands(t *testing.T) {
	store := security.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	_, run := newTestRoot(t, store)

	out, err := run("", "whoami")
	require.NoError(t, err)
	assert.Equal(t, "Not logged in\n", out)

	out, err = run("", "login", "--token", token(t))
	require.NoError(t, err)
	assert.Equal(t, "Logged in as ana (admin)\n", out)

	out, err = run("", "whoami")
	require.NoError(t, err)
	assert.Equal(t, "ana (admin)\n", out)

	_, err = run("", "logout")
	require.NoError(t, err)
	_, ok, err := store.Get(security.TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListCommand(t *testing.T) {
	store := security.NewMemoryStore()
	require.NoError(t, store.Set(security.TokenKey, "token"))
	_, run := newTestRoot(t, store)

	out, err := run("", "list", "staff", "--filter", "role=cashier")
	require.NoError(t, err)
	assert.Contains(t, out, "Ben Cruz")
	assert.NotContains(t, out, "Ana Santos")
	assert.Contains(t, out, "1 records")

	out, err = run("", "list", "staff", "--json", "--search", "ANA@")
	require.NoError(t, err)
	var listing struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &listing))
	assert.Equal(t, 1, listing.Total)

	_, err = run("", "list", "orders")
	assert.Error(t, err)

	_, err = run("", "list", "recipes")
	assert.ErrorIs(t, err, config.ErrMissingBaseURL)
}

func TestListWithoutSession(t *testing.T) {
	service, run := newTestRoot(t, security.NewMemoryStore())

	_, err := run("", "list", "staff")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please log in")
	assert.Empty(t, service.methods())
}

func TestCreateCommand(t *testing.T) {
	store := security.NewMemoryStore()
	require.NoError(t, store.Set(security.TokenKey, "token"))
	service, run := newTestRoot(t, store)

	_, err := run("", "create", "staff", "--set", "name=Cara Diaz", "--set", "role=cashier", "--set", "password=12")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password: Passcode for Cashier must be exactly 6 digits.")
	assert.Contains(t, err.Error(), "email: This field is required")
	assert.Empty(t, service.methods())

	photo := filepath.Join(t.TempDir(), "cara.png")
	require.NoError(t, os.WriteFile(photo, []byte("png"), 0o600))

	out, err := run("", "create", "staff",
		"--data", `{"name": "Cara Diaz", "email": "cara@example.com", "role": "cashier"}`,
		"--set", "password=123456",
		"--file", "photo="+photo,
	)
	require.NoError(t, err)
	assert.Equal(t, "Created employee\n", out)
	assert.Equal(t, []string{"POST /create", "GET /list-employee-accounts"}, service.methods())
	assert.Contains(t, service.calls[0].body, `filename="cara.png"`)
	assert.Contains(t, service.calls[0].body, "cashier")
}

func TestCreateCommandWarnsWhenListNotRefreshed(t *testing.T) {
	store := security.NewMemoryStore()
	require.NoError(t, store.Set(security.TokenKey, "token"))
	service, run := newTestRoot(t, store)
	service.listDown.Store(true)

	out, err := run("", "create", "staff",
		"--data", `{"name": "Cara Diaz", "email": "cara@example.com", "role": "cashier"}`,
		"--set", "password=123456",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Created employee\n")
	assert.Contains(t, out, "warning: the list could not be refreshed")
	assert.Equal(t, []string{"POST /create", "GET /list-employee-accounts"}, service.methods())
}

func TestDeleteCommandAsksForConfirmation(t *testing.T) {
	store := security.NewMemoryStore()
	require.NoError(t, store.Set(security.TokenKey, "token"))
	service, run := newTestRoot(t, store)

	out, err := run("n\n", "delete", "staff", "2")
	require.Error(t, err)
	assert.Contains(t, out, "Are you sure you want to delete this employee? [y/N]")
	assert.Equal(t, []string{"GET /list-employee-accounts"}, service.methods())

	_, err = run("yes\n", "delete", "staff", "2")
	require.NoError(t, err)

	_, err = run("", "delete", "staff", "1", "--yes")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GET /list-employee-accounts",
		"GET /list-employee-accounts",
		"DELETE /delete/2",
		"GET /list-employee-accounts",
		"DELETE /delete/1",
	}, service.methods())

	_, err = run("", "delete", "staff", "zero")
	assert.Error(t, err)
}

func TestSchemaAndResourcesCommands(t *testing.T) {
	_, run := newTestRoot(t, security.NewMemoryStore())

	out, err := run("", "resources")
	require.NoError(t, err)
	for _, name := range []string{"staff", "ingredients", "merchandise", "supplies", "products", "product-types", "recipes"} {
		assert.Contains(t, out, name)
	}

	out, err = run("", "schema", "recipes")
	require.NoError(t, err)
	assert.Contains(t, out, `"resource": "recipes"`)
	assert.Contains(t, out, `"ingredients"`)
}
