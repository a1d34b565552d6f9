package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"temperature-heatmap/internal/features/charts"
	"temperature-heatmap/internal/features/heatmap"
	logging "temperature-heatmap/internal/infra/log"
)

var validate = validator.New()

// DatasetFetcher loads the temperature document. Every page load calls it
// once; nothing is cached between requests.
type DatasetFetcher interface {
	FetchDataset(ctx context.Context) (*heatmap.Dataset, error)
}

// NewApp returns a Fiber app with the error handler and middleware the
// server uses, and the heatmap routes registered.
func NewApp(fetcher DatasetFetcher, opts heatmap.Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "temperature-heatmap",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})
	app.Use(recover.New())
	app.Use(requestLogger)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "temperature-heatmap",
		})
	})

	RegisterRoutes(app, fetcher, opts)
	return app
}

// RegisterRoutes wires the chart and data handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, fetcher DatasetFetcher, opts heatmap.Options) {
	h := &handler{fetcher: fetcher, opts: opts}

	app.Get("/", h.chart(charts.HTML{}))
	app.Get("/chart.svg", h.chart(charts.SVG{}))
	app.Get("/chart.png", h.chart(charts.PNG{}))
	app.Get("/echarts", h.chart(charts.ECharts{}))
	app.Get("/trend.png", h.chart(charts.Trend{}))

	v1 := app.Group("/api/v1")
	v1.Get("/cells", h.cells)
}

type handler struct {
	fetcher DatasetFetcher
	opts    heatmap.Options
}

// build fetches the dataset and lays out the chart. A failed fetch is
// logged as a warning and reported as 502; nothing is drawn.
func (h *handler) build(c *fiber.Ctx) (*heatmap.Chart, error) {
	ds, err := h.fetcher.FetchDataset(c.UserContext())
	if err != nil {
		logging.LogWarn("Dataset fetch failed, nothing drawn",
			zap.String("path", c.Path()),
			zap.Error(err))
		return nil, fiber.NewError(fiber.StatusBadGateway, "failed to fetch temperature dataset")
	}

	chart, err := heatmap.Build(ds, h.opts)
	if err != nil {
		logging.LogWarn("Dataset unusable, nothing drawn",
			zap.String("path", c.Path()),
			zap.Error(err))
		return nil, fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return chart, nil
}

// sizeQuery sets the initial outer width of the page and SVG surfaces. The
// height follows from the chart's aspect ratio.
type sizeQuery struct {
	Width int `validate:"omitempty,min=200,max=4000"`
}

func (q *sizeQuery) bind(c *fiber.Ctx) error {
	var err error
	if q.Width, err = queryInt(c, "width"); err != nil {
		return err
	}
	return validate.Struct(q)
}

func (h *handler) chart(r charts.Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q sizeQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		chart, err := h.build(c)
		if err != nil {
			return err
		}
		if q.Width > 0 {
			chart.Surface.Resize(q.Width)
		}

		var buf bytes.Buffer
		if err := r.Render(&buf, chart); err != nil {
			if errors.Is(err, charts.ErrNotEnoughYears) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			logging.LogError("Failed to render chart", zap.String("format", r.Format()), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render chart")
		}

		c.Set(fiber.HeaderContentType, r.ContentType())
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Send(buf.Bytes())
	}
}

// cellsQuery optionally narrows /api/v1/cells to a year range.
type cellsQuery struct {
	From int `validate:"omitempty,min=1"`
	To   int `validate:"omitempty,min=1,gtefield=From"`
}

func (q *cellsQuery) bind(c *fiber.Ctx) error {
	var err error
	if q.From, err = queryInt(c, "from"); err != nil {
		return err
	}
	if q.To, err = queryInt(c, "to"); err != nil {
		return err
	}
	return validate.Struct(q)
}

func queryInt(c *fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return n, nil
}

func (h *handler) cells(c *fiber.Ctx) error {
	var q cellsQuery
	if err := q.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	chart, err := h.build(c)
	if err != nil {
		return err
	}

	cells := make([]heatmap.Cell, 0, len(chart.Cells))
	for _, cell := range chart.Cells {
		if q.From != 0 && cell.Year < q.From {
			continue
		}
		if q.To != 0 && cell.Year > q.To {
			continue
		}
		cells = append(cells, cell)
	}

	return c.JSON(fiber.Map{
		"baseTemperature": chart.BaseTemperature,
		"yearStart":       chart.Layout.YearStart,
		"yearEnd":         chart.Layout.YearEnd,
		"minTemp":         chart.Color.Min,
		"maxTemp":         chart.Color.Max,
		"subtitle":        chart.Subtitle,
		"cells":           cells,
	})
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	requestID := logging.GenerateRequestID()
	c.Set(fiber.HeaderXRequestID, requestID)
	logging.LogRequest(requestID, c.Method(), c.OriginalURL())

	err := c.Next()

	status := c.Response().StatusCode()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	logging.LogResponse(requestID, status, time.Since(start).Milliseconds(),
		zap.String("endpoint", c.Path()))
	return err
}
