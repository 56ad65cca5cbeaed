package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	repository "github.com/okian/courtside/internal/adapters/repository"
	"github.com/okian/courtside/internal/domain/match"
	"github.com/okian/courtside/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func TestError(t *testing.T) {
	Convey("Given errors built with the api helpers", t, func() {
		cause := errors.New("unexpected EOF")

		Convey("When wrapping with a kind", func() {
			err := WrapKind("api.op", ErrBadRequest, cause)

			Convey("Then both the kind and the cause should match", func() {
				So(errors.Is(err, ErrBadRequest), ShouldBeTrue)
				So(errors.Is(err, cause), ShouldBeTrue)
				So(err.Error(), ShouldEqual, "api.op: bad request: unexpected EOF")
			})
		})

		Convey("When wrapping without a kind", func() {
			So(Wrap("api.op", nil), ShouldBeNil)
			err := Wrap("api.op", cause)
			So(err.Error(), ShouldEqual, "api.op: unexpected EOF")
			So(errors.Is(err, ErrBadRequest), ShouldBeFalse)
		})

		Convey("When creating a bare kind", func() {
			err := NewKind("api.scores", ErrRateLimited)
			So(err.Error(), ShouldEqual, "api.scores: rate limited")
			So(errors.Is(err, ErrRateLimited), ShouldBeTrue)
		})
	})
}

func TestErrorStatus(t *testing.T) {
	Convey("Given domain errors", t, func() {
		cases := []struct {
			err    error
			status int
			code   string
		}{
			{NewKind("op", ErrRateLimited), http.StatusTooManyRequests, "rate_limited"},
			{WrapKind("op", ErrBadRequest, fmt.Errorf("x: %w", match.ErrInvalidSide)), http.StatusBadRequest, "invalid_side"},
			{WrapKind("op", ErrBadRequest, errors.New("missing contributor")), http.StatusBadRequest, "bad_request"},
			{Wrap("op", match.ErrInvalidScoreValue), http.StatusBadRequest, "invalid_score_value"},
			{Wrap("op", fmt.Errorf("team 9: %w", roster.ErrOutOfRange)), http.StatusTeapot, "out_of_range"},
			{Wrap("op", repository.ErrNotFound), http.StatusNotFound, "not_found"},
			{repository.ErrCapacity, http.StatusServiceUnavailable, "capacity"},
			{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
		}

		Convey("Then each should map to its status and code", func() {
			for _, tc := range cases {
				status, code := errorStatus(tc.err, http.StatusTeapot)
				So(status, ShouldEqual, tc.status)
				So(code, ShouldEqual, tc.code)
			}
		})
	})
}

func TestScoreRequest(t *testing.T) {
	Convey("Given a score request", t, func() {
		three := 3

		Convey("When all fields are present", func() {
			req := scoreRequest{EventID: "e1", Side: "b", Contributor: &three, Points: 2}

			Convey("Then it should validate and convert", func() {
				So(req.validate(), ShouldBeNil)
				e := req.toEvent("m1")
				So(e.MatchID, ShouldEqual, "m1")
				So(e.Side, ShouldEqual, match.SideB)
				So(e.Contributor, ShouldEqual, 3)
				So(e.DedupeKey(), ShouldEqual, "m1/e1")
			})
		})

		Convey("When the contributor is missing", func() {
			err := scoreRequest{Side: "A", Points: 2}.validate()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "missing contributor")
		})

		Convey("When the side is unknown", func() {
			err := scoreRequest{Side: "home", Contributor: &three, Points: 2}.validate()
			So(errors.Is(err, match.ErrInvalidSide), ShouldBeTrue)
		})
	})
}
