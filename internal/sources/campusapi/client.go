package campusapi

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"schedulestorm-backend/internal/components/assert"
	"schedulestorm-backend/internal/components/telemetry"
	"schedulestorm-backend/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

type Config struct {
	BaseUrl string `json:"base_url"`
	// ApiKey is sent as the x-api-key header when set.
	ApiKey string `json:"api_key"`
	// RequestsPerSecond defaults to 10.
	RequestsPerSecond float64 `json:"requests_per_second"`
	// Workers bounds the concurrent instructor lookups, defaults to 4.
	Workers int `json:"workers"`
}

type apiTerm struct {
	ID     string `json:"term_id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type apiGroup struct {
	Code     string `json:"group_code"`
	FullName string `json:"group_full_name"`
}

type apiSubject struct {
	Subject string `json:"subject"`
	Name    string `json:"name"`
	Group   string `json:"group"`
}

type apiCourse struct {
	Subject        string  `json:"subject"`
	CatalogNumber  string  `json:"catalog_number"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Units          float64 `json:"units"`
	Prerequisites  string  `json:"prerequisites"`
	Corequisites   string  `json:"corequisites"`
	Antirequisites string  `json:"antirequisites"`
	Notes          string  `json:"notes"`
}

type apiMeeting struct {
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	Weekdays      string   `json:"weekdays"`
	Building      string   `json:"building"`
	Room          string   `json:"room"`
	InstructorIDs []string `json:"instructor_ids"`
}

type apiClass struct {
	ClassNumber        int          `json:"class_number"`
	Subject            string       `json:"subject"`
	CatalogNumber      string       `json:"catalog_number"`
	Section            string       `json:"section"`
	Campus             string       `json:"campus"`
	EnrollmentCapacity int          `json:"enrollment_capacity"`
	EnrollmentTotal    int          `json:"enrollment_total"`
	WaitingTotal       int          `json:"waiting_total"`
	Note               string       `json:"note"`
	Meetings           []apiMeeting `json:"meetings"`
}

type apiInstructor struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

var dumpOutput restyutil.Output

// SetDumpOutput makes every client created afterwards write its http
// exchanges to output.
func SetDumpOutput(output restyutil.Output) {
	dumpOutput = output
}

type client struct {
	http *resty.Client
}

func newClient(config Config, tel telemetry.API) (client, error) {
	assert.NotNil(tel)

	if _, err := url.Parse(config.BaseUrl); err != nil {
		return client{}, err
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(config.BaseUrl)
	httpClient.SetHeader("accept", "application/json")
	if config.ApiKey != "" {
		httpClient.SetHeader("x-api-key", config.ApiKey)
	}
	httpClient.SetTimeout(30 * time.Second)

	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	rateLimiter := rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel, "internal/sources/campusapi")
	restyutil.Dump(httpClient, "campusapi", dumpOutput)

	return client{http: httpClient}, nil
}

func get[T any](ctx context.Context, c client, path string) (T, error) {
	var out T
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(path)
	if err != nil {
		return out, err
	}
	if res.IsError() {
		return out, fmt.Errorf("GET %s: %s", path, res.Status())
	}
	return out, nil
}

func (c client) terms(ctx context.Context) ([]apiTerm, error) {
	return get[[]apiTerm](ctx, c, "/terms")
}

func (c client) groups(ctx context.Context) ([]apiGroup, error) {
	return get[[]apiGroup](ctx, c, "/codes/groups")
}

func (c client) subjects(ctx context.Context) ([]apiSubject, error) {
	return get[[]apiSubject](ctx, c, "/codes/subjects")
}

func (c client) courses(ctx context.Context) ([]apiCourse, error) {
	return get[[]apiCourse](ctx, c, "/courses")
}

func (c client) schedule(ctx context.Context, term string) ([]apiClass, error) {
	return get[[]apiClass](ctx, c, "/terms/"+url.PathEscape(term)+"/schedule")
}

func (c client) instructor(ctx context.Context, id string) (apiInstructor, error) {
	return get[apiInstructor](ctx, c, "/instructors/"+url.PathEscape(id))
}
