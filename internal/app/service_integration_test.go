package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/melodig/trackmix/internal/adapters/dataset"
	"github.com/melodig/trackmix/internal/adapters/http/api"
	service "github.com/melodig/trackmix/internal/app"
	. "github.com/smartystreets/goconvey/convey"
)

// newTestServer starts a service over the CSV fixtures and exposes it
// through the real HTTP route table.
func newTestServer(ctx context.Context) (*httptest.Server, *service.Service, error) {
	svc := service.New(
		service.WithDataSource(dataset.NewLocalSource("testdata")),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, nil, err
	}

	mux := http.NewServeMux()
	api.NewServer(svc, svc, svc.DefaultCount(), svc.MaxCount()).Register(ctx, mux)
	return httptest.NewServer(mux), svc, nil
}

func TestServiceHTTPIntegration(t *testing.T) {
	Convey("Given a running recommendation service", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		ts, svc, err := newTestServer(ctx)
		So(err, ShouldBeNil)
		defer ts.Close()
		defer svc.Stop()

		client := ts.Client()

		Convey("When checking health over HTTP", func() {
			resp, herr := client.Get(ts.URL + "/health")
			So(herr, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the dataset sizes should be reported", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)

				var health map[string]interface{}
				So(json.NewDecoder(resp.Body).Decode(&health), ShouldBeNil)
				So(health["status"], ShouldEqual, "healthy")
				So(health["offline_users"], ShouldEqual, 2)
			})
		})

		Convey("When walking the three strategies end to end", func() {
			// Unknown user: popularity fallback
			resp, gerr := client.Get(ts.URL + "/recommendations/999999999?n=5")
			So(gerr, ShouldBeNil)
			var popular struct {
				Strategy        string `json:"strategy"`
				TotalCount      int    `json:"total_count"`
				Recommendations []struct {
					TrackID int64 `json:"track_id"`
					Rank    int   `json:"rank"`
				} `json:"recommendations"`
			}
			So(json.NewDecoder(resp.Body).Decode(&popular), ShouldBeNil)
			resp.Body.Close()
			So(popular.Strategy, ShouldEqual, "popular_fallback")
			So(popular.TotalCount, ShouldEqual, 5)
			So(popular.Recommendations[0].TrackID, ShouldEqual, 501)

			// Known user without history: offline ranking
			resp, gerr = client.Get(ts.URL + "/recommendations/31?n=5")
			So(gerr, ShouldBeNil)
			var offline struct {
				Strategy        string `json:"strategy"`
				Recommendations []struct {
					TrackID int64 `json:"track_id"`
				} `json:"recommendations"`
			}
			So(json.NewDecoder(resp.Body).Decode(&offline), ShouldBeNil)
			resp.Body.Close()
			So(offline.Strategy, ShouldEqual, "offline_only")
			So(offline.Recommendations[0].TrackID, ShouldEqual, 201)

			// Report a session, then expect the mixed blend
			resp, perr := client.Post(ts.URL+"/online_history", "application/json",
				strings.NewReader(`{"user_id": 31, "track_ids": [1, 2]}`))
			So(perr, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			resp.Body.Close()

			resp, gerr = client.Get(ts.URL + "/recommendations/31?n=10")
			So(gerr, ShouldBeNil)
			var mixed struct {
				Strategy        string `json:"strategy"`
				Recommendations []struct {
					TrackID int64 `json:"track_id"`
					Rank    int   `json:"rank"`
				} `json:"recommendations"`
			}
			So(json.NewDecoder(resp.Body).Decode(&mixed), ShouldBeNil)
			resp.Body.Close()
			So(mixed.Strategy, ShouldEqual, "mixed_online_offline")
			So(mixed.Recommendations, ShouldHaveLength, 10)
			So(mixed.Recommendations[0].TrackID, ShouldEqual, 101)
			So(mixed.Recommendations[3].TrackID, ShouldEqual, 201)

			// Clear the session and fall back to the offline ranking
			req, rerr := http.NewRequest(http.MethodDelete, ts.URL+"/online_history/31", http.NoBody)
			So(rerr, ShouldBeNil)
			resp, derr := client.Do(req)
			So(derr, ShouldBeNil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			resp.Body.Close()

			resp, gerr = client.Get(ts.URL + "/recommendations/31?n=5")
			So(gerr, ShouldBeNil)
			var after struct {
				Strategy string `json:"strategy"`
			}
			So(json.NewDecoder(resp.Body).Decode(&after), ShouldBeNil)
			resp.Body.Close()
			So(after.Strategy, ShouldEqual, "offline_only")
		})

		Convey("When requesting with an invalid count", func() {
			resp, gerr := client.Get(ts.URL + "/recommendations/31?n=500")
			So(gerr, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}
