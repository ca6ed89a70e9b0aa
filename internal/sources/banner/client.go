package banner

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"schedulestorm-backend/internal/components/assert"
	"schedulestorm-backend/internal/components/telemetry"
	"schedulestorm-backend/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	pathTerms    = "bwckschd.p_disp_dyn_sched"
	pathSubjects = "bwckgens.p_proc_term_date"
	pathClasses  = "bwckschd.p_get_crse_unsec"
)

type Config struct {
	// BaseUrl is the directory the bwck* pages live under, ex.
	// https://www.uleth.ca/bridge/
	BaseUrl string `json:"base_url"`
	// RequestsPerSecond defaults to 2.
	RequestsPerSecond float64 `json:"requests_per_second"`
	CloudflareBypass  bool    `json:"cloudflare_bypass"`
	// DescriptionsUrl points at the calendar's course xml, optional.
	DescriptionsUrl string `json:"descriptions_url"`
}

var dumpOutput restyutil.Output

// SetDumpOutput makes every client created afterwards write its http
// exchanges to output.
func SetDumpOutput(output restyutil.Output) {
	dumpOutput = output
}

type client struct {
	http *resty.Client
	tel  telemetry.API
}

func newClient(config Config, tel telemetry.API) (client, error) {
	assert.NotNil(tel)

	baseUrl := config.BaseUrl
	if !strings.HasSuffix(baseUrl, "/") {
		baseUrl += "/"
	}
	parsedBaseUrl, err := url.Parse(baseUrl)
	if err != nil {
		return client{}, err
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(strings.TrimSuffix(baseUrl, "/"))
	jar, err := cookiejar.New(nil)
	if err != nil {
		return client{}, err
	}
	httpClient.SetCookieJar(jar)
	if config.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	httpClient.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsedBaseUrl.Hostname()))
	httpClient.SetTimeout(time.Minute)

	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	// max burst >= 1 just means that no requests will be dropped
	rateLimiter := rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel, "internal/sources/banner")
	restyutil.Dump(httpClient, "banner", dumpOutput)

	return client{
		http: httpClient,
		tel:  tel,
	}, nil
}

func document(res *resty.Response, err error) (*goquery.Document, error) {
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("%s %s: %s", res.Request.Method, res.Request.URL, res.Status())
	}
	return goquery.NewDocumentFromReader(strings.NewReader(res.String()))
}

func (c client) getTermsPage(ctx context.Context) (*goquery.Document, error) {
	return document(c.http.R().
		SetContext(ctx).
		Get("/" + pathTerms))
}

func (c client) getSubjectsPage(ctx context.Context, term string) (*goquery.Document, error) {
	return document(c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"p_calling_proc": pathTerms,
			"p_term":         term,
		}).
		Post("/" + pathSubjects))
}

// classQuery is the search form with every filter set to match anything,
// banner requires each field to be present, the dummy values included.
func classQuery(term, subject string) url.Values {
	form := url.Values{}
	form.Set("term_in", term)
	for _, field := range []string{
		"sel_subj", "sel_day", "sel_schd", "sel_insm", "sel_camp",
		"sel_levl", "sel_sess", "sel_instr", "sel_ptrm", "sel_attr",
	} {
		form.Add(field, "dummy")
	}
	form.Add("sel_subj", subject)
	for _, field := range []string{"sel_crse", "sel_title", "sel_from_cred", "sel_to_cred"} {
		form.Set(field, "")
	}
	for _, field := range []string{"sel_insm", "sel_camp", "sel_ptrm", "sel_instr", "sel_attr"} {
		form.Add(field, "%")
	}
	for _, field := range []string{"begin_hh", "begin_mi", "end_hh", "end_mi"} {
		form.Set(field, "0")
	}
	form.Set("begin_ap", "a")
	form.Set("end_ap", "a")
	return form
}

func (c client) getClassesPage(ctx context.Context, term, subject string) (*goquery.Document, error) {
	return document(c.http.R().
		SetContext(ctx).
		SetFormDataFromValues(classQuery(term, subject)).
		Post("/" + pathClasses))
}

func (c client) getDescriptions(ctx context.Context, descriptionsUrl string) (*goquery.Document, error) {
	return document(c.http.R().
		SetContext(ctx).
		Get(descriptionsUrl))
}
