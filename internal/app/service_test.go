package service_test

import (
	"context"
	"errors"
	"testing"

	repository "github.com/okian/courtside/internal/adapters/repository"
	service "github.com/okian/courtside/internal/app"
	"github.com/okian/courtside/internal/domain/match"
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/roster"
	"github.com/okian/courtside/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func intPtr(i int) *int { return &i }

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When calling an operation before Start", func() {
			_, err := svc.Teams(ctx)

			Convey("Then it should fail with ErrNotStarted", func() {
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})

		Convey("When starting the service", func() {
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then the built-in roster should be loaded", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["teams"], ShouldEqual, 5)
				So(stats["activeMatches"], ShouldEqual, 0)
			})

			Convey("And starting again should be a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And after Stop operations should fail again", func() {
				svc.Stop()
				_, err := svc.StartMatch(ctx, nil, nil)
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})
	})

	Convey("Given a roster file that does not exist", t, func() {
		svc := service.New(service.WithRosterFile("/nonexistent/roster.yaml"))

		Convey("Then Start should fail", func() {
			So(svc.Start(context.Background()), ShouldNotBeNil)
		})
	})
}

func TestService_Teams(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New()
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When listing teams", func() {
			teams, err := svc.Teams(ctx)

			Convey("Then they should be in selection order", func() {
				So(err, ShouldBeNil)
				So(len(teams), ShouldEqual, 5)
				So(teams[0].Name, ShouldEqual, "Lakers")
				So(teams[4].Index, ShouldEqual, 4)
			})
		})

		Convey("When cycling from the last team", func() {
			next, err := svc.NextTeam(ctx, 4)

			Convey("Then it should wrap to the first", func() {
				So(err, ShouldBeNil)
				So(next.Index, ShouldEqual, 0)
				So(next.Name, ShouldEqual, "Lakers")
			})
		})

		Convey("When asking for a team out of range", func() {
			_, err := svc.Team(ctx, 9)
			_, errNext := svc.NextTeam(ctx, -1)

			Convey("Then it should fail with ErrOutOfRange", func() {
				So(errors.Is(err, roster.ErrOutOfRange), ShouldBeTrue)
				So(errors.Is(errNext, roster.ErrOutOfRange), ShouldBeTrue)
			})
		})

		Convey("When searching for a misspelled team", func() {
			found, err := svc.SearchTeams(ctx, "celtic")

			Convey("Then the closest team should be returned", func() {
				So(err, ShouldBeNil)
				So(len(found), ShouldBeGreaterThan, 0)
				So(found[0].Name, ShouldEqual, "Celtics")
				So(found[0].Index, ShouldEqual, 1)
			})
		})
	})
}

func TestService_StartMatch(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New()
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When starting a match without selections", func() {
			m, err := svc.StartMatch(ctx, nil, nil)

			Convey("Then the default selections should be used", func() {
				So(err, ShouldBeNil)
				So(m.ID, ShouldNotBeEmpty)
				So(m.A.Team, ShouldEqual, "Lakers")
				So(m.B.Team, ShouldEqual, "Celtics")
				So(m.A.Total, ShouldEqual, 0)
				So(len(m.B.Contributors), ShouldEqual, 5)
			})
		})

		Convey("When starting a match with explicit selections", func() {
			m, err := svc.StartMatch(ctx, intPtr(3), intPtr(3))

			Convey("Then both sides may be the same team", func() {
				So(err, ShouldBeNil)
				So(m.A.Team, ShouldEqual, "Bulls")
				So(m.B.Team, ShouldEqual, "Bulls")
			})
		})

		Convey("When a selection is out of range", func() {
			_, err := svc.StartMatch(ctx, intPtr(0), intPtr(5))

			Convey("Then it should fail with ErrOutOfRange", func() {
				So(errors.Is(err, roster.ErrOutOfRange), ShouldBeTrue)
				So(svc.GetStats()["activeMatches"], ShouldEqual, 0)
			})
		})
	})

	Convey("Given a service limited to one active match", t, func() {
		svc := service.New(service.WithMaxActiveMatches(1))
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		_, err := svc.StartMatch(ctx, nil, nil)
		So(err, ShouldBeNil)

		Convey("Then a second match should fail with ErrCapacity", func() {
			_, err := svc.StartMatch(ctx, nil, nil)
			So(errors.Is(err, repository.ErrCapacity), ShouldBeTrue)
		})
	})
}

func TestService_RecordScore(t *testing.T) {
	Convey("Given an active match", t, func() {
		svc := service.New()
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		m, err := svc.StartMatch(ctx, nil, nil)
		So(err, ShouldBeNil)

		event := func(id string, side match.Side, contributor, points int) model.ScoringEvent {
			return model.ScoringEvent{EventID: id, MatchID: m.ID, Side: side, Contributor: contributor, Points: points}
		}

		Convey("When side A's first contributor scores 2 then 3", func() {
			_, err := svc.RecordScore(ctx, event("", match.SideA, 0, 2))
			So(err, ShouldBeNil)
			res, err := svc.RecordScore(ctx, event("", match.SideA, 0, 3))

			Convey("Then side A should have 5 points credited to that contributor", func() {
				So(err, ShouldBeNil)
				So(res.Status, ShouldEqual, "accepted")
				So(res.Match.A.Total, ShouldEqual, 5)
				So(res.Match.A.Contributors[0].Points, ShouldEqual, 5)
				So(res.Match.B.Total, ShouldEqual, 0)
			})
		})

		Convey("When the same event id is delivered twice", func() {
			_, err := svc.RecordScore(ctx, event("e-1", match.SideB, 1, 3))
			So(err, ShouldBeNil)
			res, err := svc.RecordScore(ctx, event("e-1", match.SideB, 1, 3))

			Convey("Then it should be applied once", func() {
				So(err, ShouldBeNil)
				So(res.Duplicate, ShouldBeTrue)
				So(res.Status, ShouldEqual, "duplicate")
				So(res.Match.B.Total, ShouldEqual, 3)
			})
		})

		Convey("When an event with an id is rejected", func() {
			_, err := svc.RecordScore(ctx, event("e-2", match.SideA, 0, 4))
			So(errors.Is(err, match.ErrInvalidScoreValue), ShouldBeTrue)

			Convey("Then the corrected retry with the same id should be accepted", func() {
				res, err := svc.RecordScore(ctx, event("e-2", match.SideA, 0, 2))
				So(err, ShouldBeNil)
				So(res.Duplicate, ShouldBeFalse)
				So(res.Match.A.Total, ShouldEqual, 2)
			})
		})

		Convey("When the contributor is out of range", func() {
			_, err := svc.RecordScore(ctx, event("", match.SideB, 5, 2))

			Convey("Then it should fail with ErrOutOfRange and leave scores unchanged", func() {
				So(errors.Is(err, match.ErrOutOfRange), ShouldBeTrue)
				cur, err := svc.Match(ctx, m.ID)
				So(err, ShouldBeNil)
				So(cur.B.Total, ShouldEqual, 0)
			})
		})

		Convey("When the match does not exist", func() {
			_, err := svc.RecordScore(ctx, model.ScoringEvent{MatchID: "missing", Side: match.SideA, Points: 2})

			Convey("Then it should fail with ErrNotFound", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestService_Finalize(t *testing.T) {
	Convey("Given a match that side A leads", t, func() {
		svc := service.New()
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		m, err := svc.StartMatch(ctx, nil, nil)
		So(err, ShouldBeNil)
		for _, p := range []int{3, 2, 2} {
			_, err := svc.RecordScore(ctx, model.ScoringEvent{MatchID: m.ID, Side: match.SideA, Contributor: 0, Points: p})
			So(err, ShouldBeNil)
		}
		_, err = svc.RecordScore(ctx, model.ScoringEvent{MatchID: m.ID, Side: match.SideB, Contributor: 1, Points: 3})
		So(err, ShouldBeNil)

		Convey("When finalizing", func() {
			o, err := svc.Finalize(ctx, m.ID)

			Convey("Then side A should win with the leaderboard ranked by points", func() {
				So(err, ShouldBeNil)
				So(o.Result, ShouldEqual, "win_a")
				So(o.Winner, ShouldEqual, "A")
				So(o.WinnerTeam, ShouldEqual, "Lakers")
				So(o.WinnerScore, ShouldEqual, 7)
				So(o.LoserScore, ShouldEqual, 3)
				So(len(o.Leaderboard), ShouldEqual, 6)
				So(o.Leaderboard[0].Name, ShouldEqual, "LeBron James")
				So(o.Leaderboard[0].Rank, ShouldEqual, 1)
				So(o.Leaderboard[1].Team, ShouldEqual, "Celtics")
			})

			Convey("And the match should no longer be active", func() {
				_, err := svc.Match(ctx, m.ID)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				_, err = svc.Finalize(ctx, m.ID)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})

	Convey("Given a match with no points", t, func() {
		svc := service.New()
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		m, err := svc.StartMatch(ctx, nil, nil)
		So(err, ShouldBeNil)

		Convey("Then finalizing should report a tie", func() {
			o, err := svc.Finalize(ctx, m.ID)
			So(err, ShouldBeNil)
			So(o.Result, ShouldEqual, "tie")
			So(o.Winner, ShouldBeEmpty)
			So(o.WinnerScore, ShouldEqual, 0)
		})
	})
}
