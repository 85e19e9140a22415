package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gormlogger "gorm.io/gorm/logger"

	"librarysite/internal/admintoken"
	"librarysite/pkg/auth"
	"librarysite/pkg/domain"
	"librarysite/pkg/store"
)

func TestSeedPostsCommand(t *testing.T) {
	t.Setenv("DATABASE_URL", "file:"+filepath.Join(t.TempDir(), "blog.db"))
	t.Setenv("SQL_LOG_LEVEL", "silent")
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"seed-posts"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := strings.Count(out.String(), "[OK] Created post"); got != 3 {
		t.Fatalf("created %d posts, want 3:\n%s", got, out.String())
	}
}

func TestServeRejectsRateLimitWithoutRedis(t *testing.T) {
	t.Setenv("DATABASE_URL", "memory")
	t.Setenv("BLOG_RATE_LIMIT_PER_MINUTE", "10")
	t.Setenv("REDIS_ADDR", "")
	t.Chdir(t.TempDir())

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"serve"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected config validation error")
	}
}

func TestAdminTokenCommand(t *testing.T) {
	const secret = "blog-admin-command-secret"
	dsn := "file:" + filepath.Join(t.TempDir(), "blog.db")
	t.Setenv("DATABASE_URL", dsn)
	t.Setenv("SQL_LOG_LEVEL", "silent")
	t.Setenv("BLOG_ADMIN_JWT_SECRET", secret)
	t.Chdir(t.TempDir())

	st, err := store.Open(dsn, store.WithSQLLogLevel(gormlogger.Silent))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	hash, err := auth.HashPassword("admin123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if _, err := st.CreateUser(domain.User{Username: "admin", PasswordHash: hash, IsStaff: true, IsSuperuser: true}); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if _, err := st.CreateUser(domain.User{Username: "reader", PasswordHash: hash}); err != nil {
		t.Fatalf("create reader: %v", err)
	}
	_ = st.Close()

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		cmd := NewRootCommand()
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(append([]string{"admin-token"}, args...))
		err := cmd.Execute()
		return strings.TrimSpace(out.String()), err
	}

	token, err := run("--username", "admin", "--password", "admin123")
	if err != nil {
		t.Fatalf("admin-token: %v", err)
	}
	verifier, _ := admintoken.NewVerifier(secret, time.Second)
	claims, err := verifier.Verify(token)
	if err != nil || claims.Subject != "admin" {
		t.Fatalf("verify issued token: claims=%+v err=%v", claims, err)
	}

	if _, err := run("--username", "admin", "--password", "wrong"); err == nil {
		t.Fatalf("expected wrong password to fail")
	}
	if _, err := run("--username", "reader", "--password", "admin123"); err == nil {
		t.Fatalf("expected non-staff user to be refused")
	}
}
