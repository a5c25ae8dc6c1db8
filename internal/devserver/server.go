// Package devserver is a local stand-in for the chart data source. It serves
// every configured chart route from a synthetic data cube so the dashboard
// can be exercised without the real statistics backend.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/ruminaider/eurodash/internal/facet"
)

// NoDataMessage is reported when the selected filters match nothing.
const NoDataMessage = "no data for the selected filters"

type payload struct {
	ChartData   *chartData    `json:"chart_data"`
	Interactive *facet.Schema `json:"interactive_data"`
	Error       *string       `json:"error"`
}

type chartData struct {
	Categories []facet.Value `json:"categories"`
	Values     []float64     `json:"values"`
}

// Server serves fixture charts over HTTP.
type Server struct {
	e   *echo.Echo
	fx  *Fixture
	log *slog.Logger
}

// New builds a server for fx. A nil logger discards.
func New(fx *Fixture, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{e: echo.New(), fx: fx, log: logger}

	s.e.HideBanner = true
	s.e.HidePort = true
	s.e.JSONSerializer = jsonSerializer{}
	s.e.HTTPErrorHandler = s.handleError
	s.e.Use(middleware.Recover())
	s.e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.log.Debug("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	s.e.GET("/", s.index)
	for _, def := range fx.Charts {
		s.e.GET(def.Route, s.chart(def))
	}
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

// Start listens on addr until Shutdown. It returns nil after a clean
// shutdown.
func (s *Server) Start(addr string) error {
	s.log.Info("data source listening", "addr", addr, "charts", len(s.fx.Charts))
	if err := s.e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving %s: %w", addr, err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// Routes lists the chart routes in fixture order.
func (s *Server) Routes() []string {
	out := make([]string, len(s.fx.Charts))
	for i, def := range s.fx.Charts {
		out[i] = def.Route
	}
	return out
}

func (s *Server) index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"routes": s.Routes()})
}

func (s *Server) chart(def ChartDef) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := c.QueryParams()
		schema := facet.NewSchema()
		filters := make(map[string][]string)
		for _, f := range def.Filters {
			dim, _ := s.fx.dimension(f.Dim)
			schema.Set(f.Dim, dim.group(f))

			want := params[f.Dim]
			if len(want) == 0 && !f.Multiple && f.Default != "" {
				want = []string{f.Default}
			}
			if len(want) == 0 && len(f.Only) > 0 {
				want = f.Only
			}
			if len(want) > 0 {
				filters[f.Dim] = want
			}
		}

		resp := payload{Interactive: schema}
		data, ok := s.fx.aggregate(def.GroupBy, filters)
		if ok {
			resp.ChartData = data
		} else {
			msg := NoDataMessage
			resp.Error = &msg
		}
		return c.JSON(http.StatusOK, resp)
	}
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}
	s.log.Warn("request failed", "uri", c.Request().RequestURI, "status", code, "error", err)
	if jerr := c.JSON(code, payload{Error: &msg}); jerr != nil {
		s.log.Error("writing error response", "error", jerr)
	}
}

// aggregate sums the cube along groupBy. Every record weighs scale times
// the product of its code weights, so each group total factors into the
// group code's weight times the per-dimension sums of the allowed weights.
// It reports false when the filters exclude everything.
func (fx *Fixture) aggregate(groupBy string, filters map[string][]string) (*chartData, bool) {
	factor := fx.Scale
	var group Dimension
	for _, d := range fx.Dimensions {
		if d.Name == groupBy {
			group = d
			continue
		}
		sum := 0.0
		for _, c := range d.Codes {
			if allowed(filters[d.Name], c.Code) {
				sum += c.Weight
			}
		}
		factor *= sum
	}

	data := &chartData{Categories: []facet.Value{}, Values: []float64{}}
	for _, c := range group.Codes {
		if !allowed(filters[group.Name], c.Code) {
			continue
		}
		cat := facet.String(group.label(c.Code))
		if group.Numeric {
			cat = facet.Number(c.Code)
		}
		data.Categories = append(data.Categories, cat)
		data.Values = append(data.Values, math.Round(factor*c.Weight*100)/100)
	}
	if len(data.Values) == 0 || factor == 0 {
		return nil, false
	}
	return data, true
}

func allowed(filter []string, code string) bool {
	if len(filter) == 0 {
		return true
	}
	for _, f := range filter {
		if f == code {
			return true
		}
	}
	return false
}
