package validate_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/domain/validate"
	. "github.com/smartystreets/goconvey/convey"
)

func TestYearValidation(t *testing.T) {
	Convey("Given a validator with min year 2014 and a fixed clock in 2024", t, func() {
		clock := func() time.Time { return time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC) }
		v := validate.New(2014, validate.WithClock(clock))

		Convey("When the year parameter is absent", func() {
			year, failure := v.Year(url.Values{})

			Convey("Then it should fail as missing", func() {
				So(year, ShouldEqual, 0)
				So(failure, ShouldNotBeNil)
				So(failure.Kind, ShouldEqual, validate.KindMissing)
				So(failure.Code, ShouldEqual, validate.CodeMissingYear)
			})
		})

		Convey("When the year parameter is empty", func() {
			_, failure := v.Year(url.Values{"year": {""}})

			Convey("Then it should fail as missing", func() {
				So(failure, ShouldNotBeNil)
				So(failure.Code, ShouldEqual, validate.CodeMissingYear)
			})
		})

		Convey("When the year parameter is not an integer", func() {
			for _, raw := range []string{"abc", "20.5", "2021x", "20 21"} {
				_, failure := v.Year(url.Values{"year": {raw}})

				Convey("Then "+raw+" should fail as malformed", func() {
					So(failure, ShouldNotBeNil)
					So(failure.Kind, ShouldEqual, validate.KindMalformed)
					So(failure.Code, ShouldEqual, validate.CodeInvalidFormat)
				})
			}
		})

		Convey("When the year is just below the minimum", func() {
			_, failure := v.Year(url.Values{"year": {"2013"}})

			Convey("Then it should fail as too early", func() {
				So(failure, ShouldNotBeNil)
				So(failure.Kind, ShouldEqual, validate.KindTooEarly)
				So(failure.Code, ShouldEqual, validate.CodeYearTooEarly)
			})
		})

		Convey("When the year is just past the current year", func() {
			_, failure := v.Year(url.Values{"year": {"2025"}})

			Convey("Then it should fail as in the future", func() {
				So(failure, ShouldNotBeNil)
				So(failure.Kind, ShouldEqual, validate.KindTooLate)
				So(failure.Code, ShouldEqual, validate.CodeYearInFuture)
			})
		})

		Convey("When the year equals the current year", func() {
			year, failure := v.Year(url.Values{"year": {"2024"}})

			Convey("Then it should pass unchanged", func() {
				So(failure, ShouldBeNil)
				So(year, ShouldEqual, 2024)
			})
		})

		Convey("When the year is valid", func() {
			year, failure := v.Year(url.Values{"year": {"2019"}})

			Convey("Then it should return the parsed year with no clamping", func() {
				So(failure, ShouldBeNil)
				So(year, ShouldEqual, 2019)
			})
		})
	})
}
