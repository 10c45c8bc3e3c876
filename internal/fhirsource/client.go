// Package fhirsource loads a patient's birth date, country and
// immunization history from a FHIR R4 server.
package fhirsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"reminder-engine/internal/metrics"
	"reminder-engine/internal/model"
)

var ErrNotFound = errors.New("patient not found")

// Patient is the subset of remote data the reminder engine consumes.
type Patient struct {
	ID           string
	BirthDate    string
	Country      string
	Vaccinations []model.VaccinationRecord
}

type cacheEntry struct {
	patient *Patient
	expires time.Time
}

type Client struct {
	baseURL string
	http    *http.Client
	ttl     time.Duration
	cache   sync.Map
	metrics *metrics.Metrics
	now     func() time.Time
}

// New returns a client for baseURL. A ttl of zero disables caching.
func New(baseURL string, timeout, ttl time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		ttl:     ttl,
		metrics: m,
		now:     time.Now,
	}
}

// Fetch loads the Patient resource and its Immunization bundle
// concurrently. Results are cached per patient until the TTL passes.
func (c *Client) Fetch(ctx context.Context, patientID string) (*Patient, error) {
	if v, ok := c.cache.Load(patientID); ok {
		entry := v.(cacheEntry)
		if c.now().Before(entry.expires) {
			return entry.patient, nil
		}
		c.cache.Delete(patientID)
	}

	var (
		pr  patientResource
		imm bundle
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.get(ctx, "Patient", "/Patient/"+url.PathEscape(patientID), &pr)
	})
	g.Go(func() error {
		q := url.Values{"patient": {patientID}, "_count": {"200"}}
		return c.get(ctx, "Immunization", "/Immunization?"+q.Encode(), &imm)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p := &Patient{
		ID:           patientID,
		BirthDate:    pr.BirthDate,
		Country:      pr.country(),
		Vaccinations: imm.records(),
	}
	if c.ttl > 0 {
		c.cache.Store(patientID, cacheEntry{patient: p, expires: c.now().Add(c.ttl)})
	}
	return p, nil
}

func (c *Client) get(ctx context.Context, resource, path string, out interface{}) error {
	start := time.Now()
	defer func() { c.metrics.ObserveSource(resource, time.Since(start)) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", resource, err)
	}
	req.Header.Set("Accept", "application/fhir+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", resource, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound && resource == "Patient":
		io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("fetch %s: unexpected status %d", resource, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", resource, err)
	}
	return nil
}
