package repos

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"

	"inventory/internal/config"
)

// DSN returns the database/sql driver name and data source for cfg. DB_URL may be
// given in JDBC form (jdbc:mysql://host:3306/db) or in the driver's native form;
// DB_USER/DB_PASS, when set, take precedence over credentials inside the URL.
func DSN(cfg config.DB) (driver, dsn string, err error) {
	raw := strings.TrimSpace(cfg.URL)
	switch cfg.Driver {
	case "", "sqlite":
		raw = strings.TrimPrefix(raw, "jdbc:sqlite:")
		if raw == "" {
			return "", "", fmt.Errorf("sqlite: empty database path")
		}
		return "sqlite", sqlitePragmas(raw), nil
	case "mysql":
		dsn, err = mysqlDSN(raw, cfg.User, cfg.Password)
		return "mysql", dsn, err
	case "postgres":
		dsn, err = postgresDSN(raw, cfg.User, cfg.Password)
		return "postgres", dsn, err
	}
	return "", "", fmt.Errorf("unsupported driver %q", cfg.Driver)
}

func mysqlDSN(raw, user, pass string) (string, error) {
	raw = strings.TrimPrefix(raw, "jdbc:")
	var mc *mysql.Config
	if strings.HasPrefix(raw, "mysql://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("mysql: bad url: %w", err)
		}
		mc = mysql.NewConfig()
		mc.Net = "tcp"
		mc.Addr = u.Host
		if u.Port() == "" {
			mc.Addr = net.JoinHostPort(u.Hostname(), "3306")
		}
		mc.DBName = strings.TrimPrefix(u.Path, "/")
		if u.User != nil {
			mc.User = u.User.Username()
			mc.Passwd, _ = u.User.Password()
		}
	} else {
		var err error
		if mc, err = mysql.ParseDSN(raw); err != nil {
			return "", fmt.Errorf("mysql: bad dsn: %w", err)
		}
	}
	if user != "" {
		mc.User = user
	}
	if pass != "" {
		mc.Passwd = pass
	}
	mc.ParseTime = true
	return mc.FormatDSN(), nil
}

func postgresDSN(raw, user, pass string) (string, error) {
	raw = strings.TrimPrefix(raw, "jdbc:")
	if strings.HasPrefix(raw, "postgresql://") {
		raw = "postgres://" + strings.TrimPrefix(raw, "postgresql://")
	}
	if !strings.HasPrefix(raw, "postgres://") {
		// key=value form
		if user != "" {
			raw += " user=" + pqQuote(user)
		}
		if pass != "" {
			raw += " password=" + pqQuote(pass)
		}
		return strings.TrimSpace(raw), nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("postgres: bad url: %w", err)
	}
	if user != "" || pass != "" {
		name, secret := user, pass
		if u.User != nil {
			if name == "" {
				name = u.User.Username()
			}
			if secret == "" {
				secret, _ = u.User.Password()
			}
		}
		u.User = url.UserPassword(name, secret)
	}
	return u.String(), nil
}

// sqlitePragmas makes writers wait for the file lock instead of failing with
// SQLITE_BUSY, and turns on WAL for file databases so readers don't block them.
func sqlitePragmas(dsn string) string {
	if strings.Contains(dsn, "busy_timeout") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	dsn += sep + "_pragma=busy_timeout(5000)"
	if !strings.Contains(dsn, ":memory:") && !strings.Contains(dsn, "journal_mode") {
		dsn += "&_pragma=journal_mode(WAL)"
	}
	return dsn
}

// pqQuote single-quotes a key=value connection parameter, escaping \ and '.
func pqQuote(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
