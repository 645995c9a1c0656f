// Package viewer is a minimal read-only HTTP front-end for browsing the
// career database: table list on the index page, table contents one level
// down. Stateless per request; no write capability.
package viewer

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"strconv"
	"time"

	"careernav/db"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type tableSummary struct {
	Name  string
	Count int64
}

type indexData struct {
	Tables []tableSummary
}

type tableData struct {
	Name   string
	Total  int64
	Limit  int
	Result *db.ResultSet
}

// Server serves the viewer routes over a read-only Store.
type Server struct {
	app      *fiber.App
	store    db.Store
	logger   *zap.SugaredLogger
	rowLimit int
}

func New(store db.Store, logger *zap.SugaredLogger, rowLimit int) *Server {
	if rowLimit <= 0 {
		rowLimit = 200
	}
	s := &Server{
		app:      fiber.New(fiber.Config{AppName: "careernav-viewer"}),
		store:    store,
		logger:   logger,
		rowLimit: rowLimit,
	}
	s.app.Use(s.accessLog())
	s.app.Get("/healthz", s.handleHealth)
	s.app.Get("/", s.handleIndex)
	s.app.Get("/tables/:name", s.handleTable)
	return s
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen blocks serving HTTP on addr.
func (s *Server) Listen(addr string) error { return s.app.Listen(addr) }

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) handleHealth(c fiber.Ctx) error {
	return c.SendString("ok")
}

func (s *Server) handleIndex(c fiber.Ctx) error {
	names, err := s.store.ListTables()
	if err != nil {
		return s.internalError(c, err)
	}
	data := indexData{Tables: make([]tableSummary, 0, len(names))}
	for _, name := range names {
		count, err := s.store.CountRows(name)
		if err != nil {
			return s.internalError(c, err)
		}
		data.Tables = append(data.Tables, tableSummary{Name: name, Count: count})
	}
	return s.render(c, "index", data)
}

func (s *Server) handleTable(c fiber.Ctx) error {
	name := c.Params("name")
	limit := s.rowLimit
	if q := c.Query("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 && n <= s.rowLimit {
			limit = n
		}
	}

	rs, err := s.store.TableRows(name, limit)
	if errors.Is(err, db.ErrUnknownTable) {
		return c.Status(fiber.StatusNotFound).SendString("no such table: " + name)
	}
	if err != nil {
		return s.internalError(c, err)
	}
	total, err := s.store.CountRows(name)
	if err != nil {
		return s.internalError(c, err)
	}
	return s.render(c, "table", tableData{Name: name, Total: total, Limit: limit, Result: rs})
}

func (s *Server) render(c fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return s.internalError(c, err)
	}
	c.Type("html")
	return c.Send(buf.Bytes())
}

func (s *Server) internalError(c fiber.Ctx, err error) error {
	s.logger.Errorw("viewer request failed", "path", c.OriginalURL(), "err", err)
	return c.Status(fiber.StatusInternalServerError).SendString("internal error")
}

func (s *Server) accessLog() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		s.logger.Infow("http access",
			"method", c.Method(),
			"path", c.OriginalURL(),
			"status", c.Response().StatusCode(),
			"latency", time.Since(start),
		)
		return err
	}
}
