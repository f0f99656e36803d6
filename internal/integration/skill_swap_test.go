package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"skill-swap/internal/app"
	"skill-swap/internal/config"
	"skill-swap/internal/database"
	"skill-swap/internal/database/migration"
	dbpostgres "skill-swap/internal/database/postgres"
	"skill-swap/internal/infrastructure/cache"
	"skill-swap/internal/infrastructure/persistence/postgres"
	"skill-swap/internal/pkg/jwt"
	"skill-swap/internal/repository"
	"skill-swap/internal/usecase"
	ucauth "skill-swap/internal/usecase/auth"
	"skill-swap/internal/ws"
	"skill-swap/migrations"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type authData struct {
	User struct {
		ID uuid.UUID `json:"id"`
	} `json:"user"`
	AccessToken string `json:"access_token"`
}

type matchData struct {
	Percentage int    `json:"percentage"`
	Label      string `json:"label"`
	Breakdown  struct {
		User1Wants []struct {
			BestMatch struct {
				Name  string `json:"name"`
				Level string `json:"level"`
			} `json:"best_match"`
		} `json:"user1_wants"`
		MaxPossibleScore float64 `json:"max_possible_score"`
	} `json:"breakdown"`
}

type discoverData struct {
	Items []struct {
		UserID     uuid.UUID `json:"user_id"`
		Username   string    `json:"username"`
		Percentage int       `json:"percentage"`
	} `json:"items"`
}

func TestIntegration_Register_UpdateSkills_Match_Discover(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	r := migration.Runner{FS: migrations.FS}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	suffix := strings.ReplaceAll(uuid.NewString()[:8], "-", "")
	emails := []string{"it-alice-" + suffix + "@example.com", "it-bruno-" + suffix + "@example.com"}
	defer cleanupUsers(t, db, emails)

	fiberApp := newTestApp(t, db).Fiber

	alice := register(t, fiberApp, emails[0], "alice"+suffix)
	bruno := register(t, fiberApp, emails[1], "bruno"+suffix)

	call(t, fiberApp, http.MethodPut, "/api/v1/me/skills", alice.AccessToken,
		`{"offered_skills":[{"name":"Go","level":"EXPERT"}],"wanted_skills":["Spanish"]}`, http.StatusOK, nil)
	call(t, fiberApp, http.MethodPut, "/api/v1/me/skills", bruno.AccessToken,
		`{"offered_skills":[{"name":"spanish","level":"beginner"},{"name":"Spanish","level":"EXPERT"}],"wanted_skills":[{"name":"go","level":"EXPERT"}]}`,
		http.StatusOK, nil)

	var m matchData
	call(t, fiberApp, http.MethodGet, "/api/v1/users/"+bruno.User.ID.String()+"/match", alice.AccessToken, "", http.StatusOK, &m)
	if m.Percentage != 100 {
		t.Fatalf("match: expected 100, got %d", m.Percentage)
	}
	if m.Label != "Perfect Match!" {
		t.Fatalf("match: unexpected label %q", m.Label)
	}
	if len(m.Breakdown.User1Wants) != 1 || m.Breakdown.User1Wants[0].BestMatch.Level != "BEGINNER" {
		t.Fatalf("match: expected stored order to keep the first BEGINNER offer, got %+v", m.Breakdown.User1Wants)
	}
	if m.Breakdown.MaxPossibleScore != 2 {
		t.Fatalf("match: expected max_possible_score 2, got %v", m.Breakdown.MaxPossibleScore)
	}

	call(t, fiberApp, http.MethodGet, "/api/v1/users/"+alice.User.ID.String()+"/match", alice.AccessToken, "", http.StatusBadRequest, nil)

	var d discoverData
	call(t, fiberApp, http.MethodGet, "/api/v1/matches/discover?limit=100", alice.AccessToken, "", http.StatusOK, &d)
	found := false
	for i, it := range d.Items {
		if it.UserID == alice.User.ID {
			t.Fatalf("discover: viewer must not appear in results")
		}
		if i > 0 && d.Items[i-1].Percentage < it.Percentage {
			t.Fatalf("discover: results not sorted by percentage desc")
		}
		if it.UserID == bruno.User.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("discover: expected bruno in results")
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("SKILLSWAP_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("SKILLSWAP_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("SKILLSWAP_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("SKILLSWAP_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("SKILLSWAP_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("SKILLSWAP_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set SKILLSWAP_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  stringsOrDefault(ssl, "disable"),
	})
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

// newTestApp wires the real stack against db, with the cache disabled.
func newTestApp(t *testing.T, db database.DB) *app.App {
	t.Helper()

	cfg := config.Config{
		App: config.AppConfig{AppName: "skill-swap-test", Environment: "test", HTTPPort: "0"},
		JWT: config.JWTConfig{
			AccessSecret:     "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessExpiresIn:  15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}

	users := postgres.NewUserRepository(db)
	profiles := repository.NewPostgresProfileRepository(db)
	jwtSvc := jwt.NewHMACService(cfg.JWT)
	noCache := cache.NewRedisWithClient(nil, 0, nil)
	hub := ws.NewHub(nil)

	c := &app.Container{
		Config:   cfg,
		DB:       db,
		Cache:    noCache,
		Hub:      hub,
		JWT:      jwtSvc,
		Users:    users,
		Profiles: profiles,
		Auth:     usecase.NewAuthUsecase(ucauth.NewService(users).WithCost(bcrypt.MinCost), users, jwtSvc),
		Profile:  usecase.NewProfileUsecase(profiles, noCache, hub, nil),
		Matching: usecase.NewMatchingUsecase(profiles, noCache, 0, nil),
	}
	return app.New(c)
}

func register(t *testing.T, a *fiber.App, email, username string) authData {
	t.Helper()
	var out authData
	body := `{"email":"` + email + `","password":"password123","name":"Test User","username":"` + username + `"}`
	call(t, a, http.MethodPost, "/api/v1/auth/register", "", body, http.StatusCreated, &out)
	if out.AccessToken == "" {
		t.Fatalf("register: empty access_token")
	}
	return out
}

func call(t *testing.T, a *fiber.App, method, path, token, body string, wantStatus int, out any) {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected status %d, got %d (%s)", method, path, wantStatus, resp.StatusCode, env.Message)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("%s %s: decode data: %v", method, path, err)
		}
	}
}

func cleanupUsers(t *testing.T, db database.DB, emails []string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, e := range emails {
		if _, err := db.Exec(ctx, `DELETE FROM users WHERE email = $1`, e); err != nil {
			t.Logf("cleanup %s: %v", e, err)
		}
	}
}

func stringsOrDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
