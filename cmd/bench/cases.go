// README: Bench cases: environment checks, chat behaviour over HTTP, and a load run against /chat.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
	statusSkip = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

// chatReply is the union of the three /chat success shapes.
type chatReply struct {
	Response string            `json:"response"`
	State    string            `json:"state"`
	Travel   map[string]string `json:"travel"`
	Question string            `json:"question"`
	Answer   string            `json:"answer"`
	Message  string            `json:"message"`
	Status   string            `json:"status"`
	Error    string            `json:"error"`
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 60 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-5s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency.Round(time.Millisecond))
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	// A date safely in the future for the complete-trip cases.
	travelDate := time.Now().AddDate(0, 2, 0).Format("2006-01-02")

	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: statusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Migration: apply (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: statusSkip, Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: statusFail, Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				for _, s := range splitSQL(string(sql)) {
					if _, err := r.db.Exec(ctx, s); err != nil {
						return Result{Status: statusFail, Note: err.Error()}
					}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Migration: tables exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: statusSkip, Note: "db not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: statusFail, Note: err.Error()}
					}
					if !exists {
						return Result{Status: statusFail, Note: "missing table: " + t}
					}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "API: health",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				status, _, err := r.get(ctx, "/health")
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				if status != http.StatusOK {
					return Result{Status: statusFail, Note: fmt.Sprintf("status=%d", status)}
				}
				return Result{Status: statusPass, Latency: time.Since(start)}
			},
		},
		{
			Name: "Chat: empty message is a client error",
			Run: func(ctx context.Context, r *Runner) Result {
				status, reply, err := r.chat(ctx, url.Values{"message": {""}})
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				if status != http.StatusBadRequest || reply.Error == "" {
					return Result{Status: statusFail, Note: fmt.Sprintf("status=%d", status)}
				}
				return Result{Status: statusPass}
			},
		},
		chatCase("Chat: flight intent without details asks for origin",
			url.Values{"message": {"I want to book a flight"}},
			func(reply chatReply) string {
				if !strings.Contains(reply.Response, "Which city are you departing from?") {
					return "no origin question in: " + reply.Response
				}
				return ""
			}),
		chatCase("Chat: vague intent prompts instead of searching",
			url.Values{"message": {"I want a vacation"}},
			func(reply chatReply) string {
				if reply.State != "awaiting_origin" {
					return "state=" + reply.State
				}
				return ""
			}),
		chatCase("Chat: general question answered or handed off",
			url.Values{"question": {"What is your baggage policy?"}},
			func(reply chatReply) string {
				if reply.Answer == "" && reply.Status == "" {
					return "neither answer nor handoff status"
				}
				return ""
			}),
		chatCase("Chat: complete trip searches",
			url.Values{"message": {"Book a flight from Paris to Rome on " + travelDate}},
			func(reply chatReply) string {
				if reply.State != "complete" {
					return "state=" + reply.State
				}
				if reply.Travel["origin"] != "Paris" || reply.Travel["destination"] != "Rome" || reply.Travel["date"] != travelDate {
					return fmt.Sprintf("travel=%v", reply.Travel)
				}
				return ""
			}),
		chatCase("Chat: reversed word order",
			url.Values{"message": {"I need a flight to Rome from Paris on " + travelDate}},
			func(reply chatReply) string {
				if reply.Travel["origin"] != "Paris" || reply.Travel["destination"] != "Rome" {
					return fmt.Sprintf("travel=%v", reply.Travel)
				}
				return ""
			}),
		chatCase("Chat: same city never both ends",
			url.Values{"message": {"trip to Paris from Paris"}},
			func(reply chatReply) string {
				if o := reply.Travel["origin"]; o != "" && strings.EqualFold(o, reply.Travel["destination"]) {
					return fmt.Sprintf("travel=%v", reply.Travel)
				}
				return ""
			}),
		chatCase("Chat: carried state fills the awaited field",
			url.Values{"message": {"Paris"}, "destination": {"Rome"}, "state": {"awaiting_origin"}},
			func(reply chatReply) string {
				if reply.Travel["origin"] != "Paris" || reply.State != "awaiting_date" {
					return fmt.Sprintf("state=%s travel=%v", reply.State, reply.Travel)
				}
				return ""
			}),
		{
			Name: "Metrics: chat counter exported",
			Run: func(ctx context.Context, r *Runner) Result {
				status, body, err := r.get(ctx, "/metrics")
				if err != nil {
					return Result{Status: statusFail, Note: err.Error()}
				}
				if status != http.StatusOK || !strings.Contains(string(body), "tripchat_chat_requests_total") {
					return Result{Status: statusFail, Note: fmt.Sprintf("status=%d", status)}
				}
				return Result{Status: statusPass}
			},
		},
		{
			Name: "Perf: /chat prompt path",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, url.Values{"message": {"I want a vacation"}})
			},
		},
	}
}

// chatCase sends one /chat request and passes the decoded 200 reply to check,
// which returns "" on success or a failure note.
func chatCase(name string, params url.Values, check func(chatReply) string) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			start := time.Now()
			status, reply, err := r.chat(ctx, params)
			latency := time.Since(start)
			if err != nil {
				return Result{Status: statusFail, Latency: latency, Note: err.Error()}
			}
			if status != http.StatusOK {
				return Result{Status: statusFail, Latency: latency, Note: fmt.Sprintf("status=%d error=%s", status, reply.Error)}
			}
			if note := check(reply); note != "" {
				return Result{Status: statusFail, Latency: latency, Note: note}
			}
			return Result{Status: statusPass, Latency: latency}
		},
	}
}

func (r *Runner) chat(ctx context.Context, params url.Values) (int, chatReply, error) {
	var reply chatReply
	status, body, err := r.get(ctx, "/chat?"+params.Encode())
	if err != nil {
		return 0, reply, err
	}
	if err := json.Unmarshal(body, &reply); err != nil {
		return status, reply, fmt.Errorf("decode: %w", err)
	}
	return status, reply, nil
}

func (r *Runner) get(ctx context.Context, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.BaseURL+path, nil)
	if err != nil {
		return 0, nil, err
	}
	resp, err := r.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func perfLoad(ctx context.Context, r *Runner, params url.Values) Result {
	end := time.Now().Add(r.cfg.Duration)
	target := r.cfg.BaseURL + "/chat?" + params.Encode()
	var count, errCount int64
	var wg sync.WaitGroup

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
				resp, err := r.httpc.Do(req)
				if err != nil {
					atomic.AddInt64(&errCount, 1)
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				if resp.StatusCode != http.StatusOK {
					atomic.AddInt64(&errCount, 1)
					continue
				}
				atomic.AddInt64(&count, 1)
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	parts := strings.Split(strings.Join(filtered, "\n"), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
