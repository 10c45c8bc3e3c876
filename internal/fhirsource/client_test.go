package fhirsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reminder-engine/internal/metrics"
	"reminder-engine/internal/model"
)

const patientJSON = `{
	"resourceType": "Patient",
	"id": "p-1",
	"birthDate": "1986-10-18",
	"address": [{"city": "Wien"}, {"country": "AT"}]
}`

const immunizationJSON = `{
	"resourceType": "Bundle",
	"entry": [
		{"resource": {
			"resourceType": "Immunization",
			"status": "completed",
			"vaccineCode": {"coding": [{"system": "http://hl7.org/fhir/sid/cvx", "code": "115", "display": "Tdap"}], "text": "Boostrix"},
			"occurrenceDateTime": "2019-03-04T10:30:00+01:00"
		}},
		{"resource": {
			"resourceType": "Immunization",
			"status": "not-done",
			"vaccineCode": {"coding": [{"system": "http://hl7.org/fhir/sid/cvx", "code": "03", "display": "MMR"}]},
			"occurrenceString": "sometime in 1990"
		}},
		{"resource": {"resourceType": "OperationOutcome"}}
	]
}`

func newServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/Patient/p-1", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/fhir+json")
		w.Write([]byte(patientJSON))
	})
	mux.HandleFunc("/Immunization", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if r.URL.Query().Get("patient") != "p-1" {
			w.Write([]byte(`{"resourceType": "Bundle"}`))
			return
		}
		w.Write([]byte(immunizationJSON))
	})
	mux.HandleFunc("/Patient/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	var calls int32
	srv := newServer(t, &calls)
	c := New(srv.URL+"/", time.Second, time.Minute, metrics.New(prometheus.NewRegistry()))

	p, err := c.Fetch(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, "1986-10-18", p.BirthDate)
	assert.Equal(t, "AT", p.Country)
	require.Len(t, p.Vaccinations, 2)

	assert.Equal(t, model.VaccinationRecord{
		VaccineName:   "Boostrix",
		VaccineType:   "Tdap",
		VaccineSystem: "http://hl7.org/fhir/sid/cvx",
		VaccineCode:   "115",
		Date:          "2019-03-04",
		Status:        "completed",
	}, p.Vaccinations[0])

	notDone := p.Vaccinations[1]
	assert.Equal(t, "MMR", notDone.VaccineName)
	assert.Equal(t, "sometime in 1990", notDone.Date)
	assert.False(t, notDone.IsCompleted())
}

func TestFetchCaches(t *testing.T) {
	var calls int32
	srv := newServer(t, &calls)
	c := New(srv.URL, time.Second, time.Minute, nil)
	clock := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	_, err := c.Fetch(context.Background(), "p-1")
	require.NoError(t, err)
	_, err = c.Fetch(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "second fetch served from cache")

	clock = clock.Add(2 * time.Minute)
	_, err = c.Fetch(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls), "expired entry refetched")
}

func TestFetchNotFound(t *testing.T) {
	var calls int32
	srv := newServer(t, &calls)
	c := New(srv.URL, time.Second, 0, nil)

	_, err := c.Fetch(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchUpstreamError(t *testing.T) {
	var calls int32
	srv := newServer(t, &calls)
	c := New(srv.URL, time.Second, 0, nil)

	_, err := c.Fetch(context.Background(), "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "502")
}
