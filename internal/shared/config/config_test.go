package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"jobtracker-backend/internal/shared/config"
)

func TestLoad(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		convey.Convey("When only defaults apply", func() {
			chdirTemp(t)
			clearEnv(t)

			cfg, err := config.Load()

			convey.Convey("Then the defaults are returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Port, convey.ShouldEqual, "8080")
				convey.So(cfg.Env, convey.ShouldEqual, "dev")
				convey.So(cfg.ObjectStoreType, convey.ShouldEqual, "local")
				convey.So(cfg.AllowedOrigins(), convey.ShouldResemble, []string{"http://localhost:3000"})
				convey.So(cfg.IsDevLike(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a YAML file and env vars are both present", func() {
			dir := chdirTemp(t)
			clearEnv(t)
			path := filepath.Join(dir, "config.yaml")
			yaml := "port: \"9090\"\nlog_level: debug\ncors_allow_origins: \"http://a.test, http://b.test\"\n"
			convey.So(os.WriteFile(path, []byte(yaml), 0o600), convey.ShouldBeNil)
			t.Setenv("CONFIG_FILE", path)
			t.Setenv("PORT", "7070")
			t.Setenv("OBJECT_STORE", "S3")

			cfg, err := config.Load()

			convey.Convey("Then env wins over the file and the file over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Port, convey.ShouldEqual, "7070")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.ObjectStoreType, convey.ShouldEqual, "s3")
				convey.So(cfg.AllowedOrigins(), convey.ShouldResemble, []string{"http://a.test", "http://b.test"})
			})
		})

		convey.Convey("When a .env file is present", func() {
			dir := chdirTemp(t)
			clearEnv(t)
			convey.So(os.WriteFile(filepath.Join(dir, ".env"), []byte("AUTH_USER=maria\n"), 0o600), convey.ShouldBeNil)
			t.Cleanup(func() { _ = os.Unsetenv("AUTH_USER") })

			cfg, err := config.Load()

			convey.Convey("Then its values are picked up", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.AuthUser, convey.ShouldEqual, "maria")
			})
		})

		convey.Convey("When running in production without a database", func() {
			chdirTemp(t)
			clearEnv(t)
			t.Setenv("ENV", "prod")

			_, err := config.Load()

			convey.Convey("Then loading fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CONFIG_FILE", "PORT", "ENV", "LOG_LEVEL", "DATABASE_URL", "CORS_ALLOW_ORIGINS", "OBJECT_STORE", "AUTH_USER", "JWT_SECRET"} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}
