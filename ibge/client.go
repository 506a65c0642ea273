// Package ibge downloads quarterly PNAD Contínua microdata from the IBGE file server.
package ibge

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/invertedv/pnad"
)

const (
	BaseURL = "https://ftp.ibge.gov.br/Trabalho_e_Rendimento/Pesquisa_Nacional_por_Amostra_de_Domicilios_continua/Trimestral/Microdados"

	docDir       = "Documentacao"
	layoutZip    = "Dicionario_e_input"
	layoutMember = "input_PNADC_trimestral.txt"

	firstYear = 2012
)

type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
	tmpDir  string
}

// ClientOpt sets a property of a Client.
type ClientOpt func(c *Client) error

func NewClient(opts ...ClientOpt) (*Client, error) {
	c := &Client{
		baseURL: BaseURL,
		http:    http.DefaultClient,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if e := opt(c); e != nil {
			return nil, e
		}
	}

	return c, nil
}

// *********** Setters ***********

func WithBaseURL(base string) ClientOpt {
	return func(c *Client) error {
		if _, e := url.Parse(base); e != nil {
			return e
		}

		c.baseURL = strings.TrimRight(base, "/")
		return nil
	}
}

func WithHTTPClient(h *http.Client) ClientOpt {
	return func(c *Client) error {
		if h == nil {
			return fmt.Errorf("nil http client")
		}

		c.http = h
		return nil
	}
}

func WithLogger(l *slog.Logger) ClientOpt {
	return func(c *Client) error {
		if l == nil {
			return fmt.Errorf("nil logger")
		}

		c.logger = l
		return nil
	}
}

// WithTempDir sets where downloaded archives are staged. The default is os.TempDir().
func WithTempDir(dir string) ClientOpt {
	return func(c *Client) error {
		c.tmpDir = dir
		return nil
	}
}

// *********** Fetch ***********

// Fetch returns columns of the microdata for year and quarter. Every column is DTstring.
func (c *Client) Fetch(ctx context.Context, year, quarter int, columns []string) (*pnad.DF, error) {
	if quarter < 1 || quarter > 4 {
		return nil, fmt.Errorf("quarter must be 1-4, got %d", quarter)
	}

	if year < firstYear {
		return nil, fmt.Errorf("no PNAD Contínua microdata before %d, asked for %d", firstYear, year)
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("no columns requested")
	}

	var (
		layout Layout
		e      error
	)
	if layout, e = c.layout(ctx); e != nil {
		return nil, fmt.Errorf("layout: %w", e)
	}

	if layout, e = layout.Select(columns...); e != nil {
		return nil, e
	}

	prefix := fmt.Sprintf("PNADC_%02d%d", quarter, year)
	var dataURL string
	if dataURL, e = c.find(ctx, fmt.Sprintf("%s/%d/", c.baseURL, year), func(name string) bool {
		return strings.HasPrefix(name, prefix) && strings.HasSuffix(strings.ToLower(name), ".zip")
	}); e != nil {
		return nil, e
	}

	c.logger.Info("downloading microdata", "url", dataURL)

	var df *pnad.DF
	e = c.withZip(ctx, dataURL, func(zr *zip.Reader) error {
		member := findMember(zr, func(name string) bool {
			return strings.HasSuffix(strings.ToLower(name), ".txt")
		})
		if member == nil {
			return fmt.Errorf("%s: no .txt member", dataURL)
		}

		rc, ex := member.Open()
		if ex != nil {
			return ex
		}
		defer func() { _ = rc.Close() }()

		df, ex = ReadFixed(rc, layout)
		return ex
	})
	if e != nil {
		return nil, e
	}

	c.logger.Info("microdata read", "rows", df.RowCount(), "columns", df.ColumnCount())

	return df, nil
}

func (c *Client) layout(ctx context.Context) (Layout, error) {
	var (
		docURL string
		e      error
	)
	if docURL, e = c.find(ctx, fmt.Sprintf("%s/%s/", c.baseURL, docDir), func(name string) bool {
		return strings.Contains(name, layoutZip) && strings.HasSuffix(strings.ToLower(name), ".zip")
	}); e != nil {
		return nil, e
	}

	c.logger.Debug("downloading layout", "url", docURL)

	var layout Layout
	e = c.withZip(ctx, docURL, func(zr *zip.Reader) error {
		member := findMember(zr, func(name string) bool {
			return strings.EqualFold(baseName(name), layoutMember)
		})
		if member == nil {
			return fmt.Errorf("%s: no member %s", docURL, layoutMember)
		}

		rc, ex := member.Open()
		if ex != nil {
			return ex
		}
		defer func() { _ = rc.Close() }()

		layout, ex = ParseLayout(rc)
		return ex
	})

	return layout, e
}

// *********** HTTP ***********

var href = regexp.MustCompile(`(?i)href\s*=\s*"([^"]+)"`)

// find lists the directory page at dirURL and returns the URL of the first entry matching match.
func (c *Client) find(ctx context.Context, dirURL string, match func(name string) bool) (string, error) {
	var (
		body []byte
		e    error
	)
	if body, e = c.get(ctx, dirURL); e != nil {
		return "", e
	}

	var base *url.URL
	if base, e = url.Parse(dirURL); e != nil {
		return "", e
	}

	for _, m := range href.FindAllStringSubmatch(string(body), -1) {
		if !match(baseName(m[1])) {
			continue
		}

		var ref *url.URL
		if ref, e = url.Parse(m[1]); e != nil {
			continue
		}

		return base.ResolveReference(ref).String(), nil
	}

	return "", fmt.Errorf("%s: no matching file", dirURL)
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	resp, e := c.do(ctx, u)
	if e != nil {
		return nil, e
	}
	defer func() { _ = resp.Body.Close() }()

	return io.ReadAll(resp.Body)
}

func (c *Client) do(ctx context.Context, u string) (*http.Response, error) {
	req, e := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if e != nil {
		return nil, e
	}

	resp, e := c.http.Do(req)
	if e != nil {
		return nil, e
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %s", u, resp.Status)
	}

	return resp, nil
}

// withZip downloads the archive at u to a temp file and calls fn on it. The file is removed after.
func (c *Client) withZip(ctx context.Context, u string, fn func(zr *zip.Reader) error) error {
	resp, e := c.do(ctx, u)
	if e != nil {
		return e
	}
	defer func() { _ = resp.Body.Close() }()

	tmp, e := os.CreateTemp(c.tmpDir, "pnadc-*.zip")
	if e != nil {
		return e
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	defer func() { _ = tmp.Close() }()

	n, e := io.Copy(tmp, resp.Body)
	if e != nil {
		return fmt.Errorf("download %s: %w", u, e)
	}

	c.logger.Debug("downloaded", "url", u, "bytes", n)

	zr, e := zip.NewReader(tmp, n)
	if e != nil {
		return fmt.Errorf("%s: %w", u, e)
	}

	return fn(zr)
}

func findMember(zr *zip.Reader, match func(name string) bool) *zip.File {
	for _, f := range zr.File {
		if match(f.Name) {
			return f
		}
	}

	return nil
}

func baseName(p string) string {
	p = strings.TrimRight(p, "/")
	if ind := strings.LastIndex(p, "/"); ind >= 0 {
		return p[ind+1:]
	}

	return p
}
