package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/silverstar-dev/silverstar/internal/api"
	"github.com/silverstar-dev/silverstar/internal/tokenstore"
)

// testEnv wires a command run against a fake API server
type testEnv struct {
	out    *bytes.Buffer
	tokens *tokenstore.Memory
	opts   []Option
}

func newTestEnv(t *testing.T, handler http.HandlerFunc) *testEnv {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	out := &bytes.Buffer{}
	tokens := tokenstore.NewMemory()
	client := api.New(server.URL, tokens, zerolog.Nop())

	return &testEnv{
		out:    out,
		tokens: tokens,
		opts:   []Option{WithClient(client), WithTokenStore(tokens), WithOutput(out)},
	}
}

// loggedIn seeds the store with a token the fake server accepts
func (e *testEnv) loggedIn(t *testing.T) *testEnv {
	t.Helper()
	if err := e.tokens.Set("t1"); err != nil {
		t.Fatalf("failed to seed token: %v", err)
	}
	return e
}

// authOK answers /auth/me for the guard and delegates everything else
func authOK(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/me" {
			if r.Header.Get("Authorization") != "Bearer t1" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": "Invalid token"})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"user": api.User{ID: "u1", Email: "admin@example.com", Role: api.RoleAdmin},
			})
			return
		}
		next(w, r)
	}
}

func TestRunLoginSuccess(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req api.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "admin@example.com" || req.Password != "secret123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(api.LoginResponse{
			Token: "t1",
			User:  api.User{ID: "u1", Email: req.Email, Role: api.RoleAdmin},
		})
	})

	if err := runLogin("admin@example.com", "secret123", env.opts...); err != nil {
		t.Fatalf("runLogin failed: %v", err)
	}

	token, ok, err := env.tokens.Get()
	if err != nil || !ok {
		t.Fatalf("expected stored token, got ok=%t err=%v", ok, err)
	}
	if token != "t1" {
		t.Errorf("expected token t1, got %q", token)
	}
	if !strings.Contains(env.out.String(), "Login successful") {
		t.Errorf("expected success output, got %q", env.out.String())
	}
	if !strings.Contains(env.out.String(), "Role: Admin") {
		t.Errorf("expected admin role output, got %q", env.out.String())
	}
}

func TestRunLoginSuperAdminHintsAtRestaurants(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.LoginResponse{
			Token: "t1",
			User:  api.User{ID: "u1", Email: "super@example.com", Role: api.RoleSuperAdmin},
		})
	})

	if err := runLogin("super@example.com", "secret123", env.opts...); err != nil {
		t.Fatalf("runLogin failed: %v", err)
	}

	if !strings.Contains(env.out.String(), "restaurants ls") {
		t.Errorf("expected super admin hint, got %q", env.out.String())
	}
}

func TestRunLoginFailureLeavesStoreEmpty(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	})

	err := runLogin("admin@example.com", "wrong", env.opts...)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Invalid credentials") {
		t.Errorf("expected server message in error, got %v", err)
	}

	if _, ok, _ := env.tokens.Get(); ok {
		t.Error("token store should stay empty after a failed login")
	}
}

func TestRunLoginRequiresEmail(t *testing.T) {
	t.Setenv("SILVERSTAR_EMAIL", "")
	t.Setenv("SILVERSTAR_PASSWORD", "")

	err := runLogin("", "")
	if err == nil || !strings.Contains(err.Error(), "email is required") {
		t.Errorf("expected email-required error, got %v", err)
	}
}

func TestRunLoginReadsEnvVars(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "env@example.com" || req.Password != "envpass" {
			t.Errorf("expected env credentials, got %s / %s", req.Email, req.Password)
		}
		json.NewEncoder(w).Encode(api.LoginResponse{
			Token: "t1",
			User:  api.User{ID: "u1", Email: req.Email, Role: api.RoleAdmin},
		})
	})

	t.Setenv("SILVERSTAR_EMAIL", "env@example.com")
	t.Setenv("SILVERSTAR_PASSWORD", "envpass")

	if err := runLogin("", "", env.opts...); err != nil {
		t.Fatalf("runLogin failed: %v", err)
	}
}

func TestRunLogoutIsIdempotent(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("logout must not talk to the server")
	})
	env.loggedIn(t)

	if err := runLogout(env.opts...); err != nil {
		t.Fatalf("runLogout failed: %v", err)
	}
	if _, ok, _ := env.tokens.Get(); ok {
		t.Error("token should be cleared")
	}

	// Second logout with nothing stored still succeeds
	if err := runLogout(env.opts...); err != nil {
		t.Fatalf("second runLogout failed: %v", err)
	}
}

func TestRunWhoami(t *testing.T) {
	env := newTestEnv(t, authOK(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected call to %s", r.URL.Path)
	})).loggedIn(t)

	if err := runWhoami(env.opts...); err != nil {
		t.Fatalf("runWhoami failed: %v", err)
	}

	out := env.out.String()
	for _, want := range []string{"u1", "admin@example.com", "admin"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got %q", want, out)
		}
	}
}

func TestRunWhoamiWithoutToken(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without a stored token")
	})

	err := runWhoami(env.opts...)
	if err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Errorf("expected not-logged-in error, got %v", err)
	}
}

func TestRunCategoriesList(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []api.Category{
				{ID: "c1", Name: "Soups", Slug: "soups", IsActive: true, SortOrder: 1},
				{ID: "c2", Name: "Starters", Slug: "starters", IsActive: true, SortOrder: 2},
			},
		})
	})

	if err := runCategoriesList(env.opts...); err != nil {
		t.Fatalf("runCategoriesList failed: %v", err)
	}

	out := env.out.String()
	if !strings.Contains(out, "Soups") || !strings.Contains(out, "starters") {
		t.Errorf("expected category table, got %q", out)
	}
}

func TestRunCategoriesListEmpty(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []api.Category{}})
	})

	if err := runCategoriesList(env.opts...); err != nil {
		t.Fatalf("runCategoriesList failed: %v", err)
	}
	if !strings.Contains(env.out.String(), "No categories found") {
		t.Errorf("expected empty hint, got %q", env.out.String())
	}
}

func TestRunCategoriesCreateRequiresSession(t *testing.T) {
	env := newTestEnv(t, authOK(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected call to %s", r.URL.Path)
	}))

	err := runCategoriesCreate(api.CategoryInput{Name: "Soups"}, env.opts...)
	if err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Errorf("expected not-logged-in error, got %v", err)
	}
}

func TestRunCategoriesCreate(t *testing.T) {
	var received api.CategoryInput
	env := newTestEnv(t, authOK(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/categories" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&received)
		json.NewEncoder(w).Encode(map[string]any{
			"data": api.Category{ID: "c9", Name: received.Name},
		})
	})).loggedIn(t)

	input := api.CategoryInput{Name: "Desserts", Slug: "desserts", Icon: "IceCream", IsActive: true}
	if err := runCategoriesCreate(input, env.opts...); err != nil {
		t.Fatalf("runCategoriesCreate failed: %v", err)
	}

	if received.Name != "Desserts" || received.Slug != "desserts" {
		t.Errorf("unexpected payload: %+v", received)
	}
	if !strings.Contains(env.out.String(), "c9") {
		t.Errorf("expected created id in output, got %q", env.out.String())
	}
}

func TestRunCategoriesUpdateMergesOnlyChangedFlags(t *testing.T) {
	var received api.CategoryInput
	env := newTestEnv(t, authOK(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/categories/c1":
			json.NewEncoder(w).Encode(map[string]any{
				"data": api.Category{
					ID: "c1", Name: "Soups", Slug: "soups",
					Icon: "Soup", Color: "from-red-400 to-red-600",
					IsActive: true, SortOrder: 3,
				},
			})
		case r.Method == http.MethodPut && r.URL.Path == "/categories/c1":
			json.NewDecoder(r.Body).Decode(&received)
			json.NewEncoder(w).Encode(map[string]any{"data": api.Category{ID: "c1"}})
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})).loggedIn(t)

	var input api.CategoryInput
	cmd := &cobra.Command{}
	categoryFlags(cmd, &input)
	if err := cmd.Flags().Set("name", "Hot Soups"); err != nil {
		t.Fatal(err)
	}

	if err := runCategoriesUpdate(cmd, "c1", input, env.opts...); err != nil {
		t.Fatalf("runCategoriesUpdate failed: %v", err)
	}

	if received.Name != "Hot Soups" {
		t.Errorf("expected updated name, got %q", received.Name)
	}
	// Everything else keeps the server's values, flag defaults included
	if received.Slug != "soups" || received.Icon != "Soup" || received.SortOrder != 3 {
		t.Errorf("unchanged fields were overwritten: %+v", received)
	}
	if received.Color != "from-red-400 to-red-600" {
		t.Errorf("color default leaked into update: %q", received.Color)
	}
}

func TestRunMenuListSendsFilter(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("category") != "c1" || q.Get("search") != "soup" || q.Get("isAvailable") != "true" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []api.MenuItem{
				{ID: "m1", Name: "Sweet Corn Soup", Category: api.CategoryRef{ID: "c1", Name: "Soups"}, Price: 120, IsAvailable: true},
			},
		})
	})

	available := true
	filter := api.MenuFilter{Category: "c1", Search: "soup", IsAvailable: &available}
	if err := runMenuList(filter, env.opts...); err != nil {
		t.Fatalf("runMenuList failed: %v", err)
	}
	if !strings.Contains(env.out.String(), "Sweet Corn Soup") {
		t.Errorf("expected item in table, got %q", env.out.String())
	}
}

func TestRunMenuCreateWithImage(t *testing.T) {
	imagePath := filepath.Join(t.TempDir(), "soup.jpg")
	if err := os.WriteFile(imagePath, []byte("jpeg-bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	var (
		gotContentType string
		gotName        string
		gotFileBytes   []byte
	)
	env := newTestEnv(t, authOK(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/menu" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Fatalf("failed to parse multipart: %v", err)
		}
		gotName = r.FormValue("name")
		if file, _, err := r.FormFile("image"); err == nil {
			gotFileBytes, _ = io.ReadAll(file)
			file.Close()
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"data": api.MenuItem{ID: "m9", Name: "Sweet Corn Soup"}})
	})).loggedIn(t)

	input := api.MenuItemInput{Name: "Sweet Corn Soup", Category: "c1", Price: 120, IsAvailable: true}
	if err := runMenuCreate(input, imagePath, env.opts...); err != nil {
		t.Fatalf("runMenuCreate failed: %v", err)
	}

	if !strings.HasPrefix(gotContentType, "multipart/form-data") {
		t.Errorf("expected multipart request, got %q", gotContentType)
	}
	if gotName != "Sweet Corn Soup" {
		t.Errorf("expected name field, got %q", gotName)
	}
	if string(gotFileBytes) != "jpeg-bytes" {
		t.Errorf("expected image bytes to pass through, got %q", gotFileBytes)
	}
	if !strings.Contains(env.out.String(), "m9") {
		t.Errorf("expected created id in output, got %q", env.out.String())
	}
}

func TestRunMenuCreateRejectsOversizedImage(t *testing.T) {
	imagePath := filepath.Join(t.TempDir(), "huge.jpg")
	if err := os.WriteFile(imagePath, make([]byte, maxImageSizeBytes+1), 0644); err != nil {
		t.Fatal(err)
	}

	env := newTestEnv(t, authOK(func(w http.ResponseWriter, r *http.Request) {
		t.Error("oversized image must be rejected before any upload")
	})).loggedIn(t)

	input := api.MenuItemInput{Name: "Too Big", Category: "c1"}
	err := runMenuCreate(input, imagePath, env.opts...)
	if err == nil || !strings.Contains(err.Error(), "5MB") {
		t.Errorf("expected size limit error, got %v", err)
	}
}

func TestRunMenuExport(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/categories":
			json.NewEncoder(w).Encode(map[string]any{
				"data": []api.Category{{ID: "c1", Name: "Soups", Slug: "soups", IsActive: true}},
			})
		case "/menu":
			json.NewEncoder(w).Encode(map[string]any{
				"data": []api.MenuItem{{ID: "m1", Name: "Sweet Corn Soup", Price: 120}},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}

	t.Run("yaml", func(t *testing.T) {
		env := newTestEnv(t, handler)
		if err := runMenuExport("yaml", "", env.opts...); err != nil {
			t.Fatalf("runMenuExport failed: %v", err)
		}

		var export menuExport
		if err := yaml.Unmarshal(env.out.Bytes(), &export); err != nil {
			t.Fatalf("output is not valid yaml: %v", err)
		}
		if len(export.Categories) != 1 || export.Categories[0].Name != "Soups" {
			t.Errorf("unexpected categories: %+v", export.Categories)
		}
		if len(export.Items) != 1 || export.Items[0].Name != "Sweet Corn Soup" {
			t.Errorf("unexpected items: %+v", export.Items)
		}
	})

	t.Run("json to file", func(t *testing.T) {
		env := newTestEnv(t, handler)
		outPath := filepath.Join(t.TempDir(), "menu.json")
		if err := runMenuExport("json", outPath, env.opts...); err != nil {
			t.Fatalf("runMenuExport failed: %v", err)
		}

		data, err := os.ReadFile(outPath)
		if err != nil {
			t.Fatalf("export file not written: %v", err)
		}
		var export menuExport
		if err := json.Unmarshal(data, &export); err != nil {
			t.Fatalf("export file is not valid json: %v", err)
		}
		if !strings.Contains(env.out.String(), "Exported 1 categories and 1 items") {
			t.Errorf("expected summary line, got %q", env.out.String())
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		err := runMenuExport("xml", "")
		if err == nil || !strings.Contains(err.Error(), "unsupported format") {
			t.Errorf("expected format error, got %v", err)
		}
	})
}

func TestRunRestaurantsList(t *testing.T) {
	env := newTestEnv(t, authOK(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/restaurants" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []api.Restaurant{
				{ID: "r1", RestaurantName: "Silver Star", PhoneNumber: "12345", ValidityOfPlan: "2027-01-01"},
			},
		})
	})).loggedIn(t)

	if err := runRestaurantsList(env.opts...); err != nil {
		t.Fatalf("runRestaurantsList failed: %v", err)
	}
	if !strings.Contains(env.out.String(), "Silver Star") {
		t.Errorf("expected restaurant table, got %q", env.out.String())
	}
}

func TestRunRestaurantsUpdateMergesOnlyChangedFlags(t *testing.T) {
	var received api.RestaurantInput
	env := newTestEnv(t, authOK(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/restaurants":
			json.NewEncoder(w).Encode(map[string]any{
				"data": []api.Restaurant{
					{ID: "r1", RestaurantName: "Silver Star", PhoneNumber: "12345", PlanID: "gold"},
				},
			})
		case r.Method == http.MethodPut && r.URL.Path == "/restaurants/r1":
			json.NewDecoder(r.Body).Decode(&received)
			json.NewEncoder(w).Encode(map[string]any{"data": api.Restaurant{ID: "r1"}})
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	})).loggedIn(t)

	var input api.RestaurantInput
	cmd := &cobra.Command{}
	restaurantFlags(cmd, &input)
	if err := cmd.Flags().Set("phone", "99999"); err != nil {
		t.Fatal(err)
	}

	if err := runRestaurantsUpdate(cmd, "r1", input, env.opts...); err != nil {
		t.Fatalf("runRestaurantsUpdate failed: %v", err)
	}

	if received.PhoneNumber != "99999" {
		t.Errorf("expected updated phone, got %q", received.PhoneNumber)
	}
	if received.RestaurantName != "Silver Star" || received.PlanID != "gold" {
		t.Errorf("unchanged fields were overwritten: %+v", received)
	}
}

func TestRunRestaurantsUpdateUnknownID(t *testing.T) {
	env := newTestEnv(t, authOK(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []api.Restaurant{}})
	})).loggedIn(t)

	var input api.RestaurantInput
	cmd := &cobra.Command{}
	restaurantFlags(cmd, &input)

	err := runRestaurantsUpdate(cmd, "missing", input, env.opts...)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestRunChangePasswordNonInteractive(t *testing.T) {
	env := newTestEnv(t, authOK(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/auth/change-password" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var req api.ChangePasswordRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.CurrentPassword != "oldpass" || req.NewPassword != "newpass123" {
			t.Errorf("unexpected payload: %+v", req)
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"message": "Password updated"})
	})).loggedIn(t)

	if err := runChangePassword("oldpass", "newpass123", env.opts...); err != nil {
		t.Fatalf("runChangePassword failed: %v", err)
	}
	if !strings.Contains(env.out.String(), "Password changed") {
		t.Errorf("expected success output, got %q", env.out.String())
	}
}

func TestRunChangePasswordTooShort(t *testing.T) {
	env := newTestEnv(t, authOK(func(w http.ResponseWriter, r *http.Request) {
		t.Error("short password must be rejected locally")
	})).loggedIn(t)

	err := runChangePassword("oldpass", "abc", env.opts...)
	if err == nil || !strings.Contains(err.Error(), "at least 6 characters") {
		t.Errorf("expected length error, got %v", err)
	}
}

func TestRunChangePasswordWrongCurrent(t *testing.T) {
	env := newTestEnv(t, authOK(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "Current password is incorrect"})
	})).loggedIn(t)

	err := runChangePassword("wrong", "newpass123", env.opts...)
	if err == nil || !strings.Contains(err.Error(), "Current password is incorrect") {
		t.Errorf("expected server message, got %v", err)
	}
}
