package log

import (
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/op/go-logging"
)

const module = "inventory"

var logger = logging.MustGetLogger(module)

func init() {
	Init(os.Stdout, logging.INFO)
}

// Init routes all entries to w, dropping those below level.
func Init(w io.Writer, level logging.Level) {
	backend := logging.NewBackendFormatter(
		logging.NewLogBackend(w, "", 0),
		logging.MustStringFormatter(`%{message}`),
	)
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(level, module)
	logger.SetBackend(leveled)
}

// ParseLevel maps a LOG_LEVEL value (debug, info, warn, error...) to a logging level.
func ParseLevel(s string) (logging.Level, error) {
	if s == "warn" {
		s = "warning"
	}
	return logging.LogLevel(s)
}

type entry struct {
	TS     string         `json:"ts"`
	Level  string         `json:"level"`
	ReqID  string         `json:"req_id,omitempty"`
	IP     string         `json:"ip,omitempty"`
	Method string         `json:"method,omitempty"`
	Path   string         `json:"path,omitempty"`
	Action string         `json:"action,omitempty"`
	Status int            `json:"status,omitempty"`
	Err    string         `json:"err,omitempty"`
	Fields map[string]any `json:"fields,omitempty"`
}

func write(level logging.Level, name string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := entry{TS: time.Now().UTC().Format(time.RFC3339), Level: name, Action: action, Fields: fields}
	if c != nil {
		e.IP = c.IP()
		e.Method = c.Method()
		e.Path = c.Path()
		e.Status = c.Response().StatusCode()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e.ReqID = rid
		}
	}
	if err != nil {
		e.Err = err.Error()
	}
	b, _ := json.Marshal(e)
	switch level {
	case logging.ERROR:
		logger.Error(string(b))
	case logging.WARNING:
		logger.Warning(string(b))
	case logging.DEBUG:
		logger.Debug(string(b))
	default:
		logger.Info(string(b))
	}
}

func Debug(c *fiber.Ctx, action string, fields map[string]any) {
	write(logging.DEBUG, "debug", c, action, nil, fields)
}
func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(logging.INFO, "info", c, action, nil, fields)
}
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(logging.INFO, "audit", c, action, nil, fields)
}
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(logging.WARNING, "warn", c, action, nil, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(logging.ERROR, "error", c, action, err, fields)
}
