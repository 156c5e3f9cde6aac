package dataset_test

import (
	"errors"
	"testing"

	"github.com/okian/statsboard/internal/domain/dataset"
	. "github.com/smartystreets/goconvey/convey"
)

func mustTable(columns []string, rows ...[]string) *dataset.Table {
	t, err := dataset.New(columns...)
	if err != nil {
		panic(err)
	}
	for _, r := range rows {
		cells := make([]dataset.Value, len(r))
		for i, s := range r {
			cells[i] = dataset.Text(s)
		}
		if err := t.AppendRow(cells...); err != nil {
			panic(err)
		}
	}
	return t
}

func battingTable() *dataset.Table {
	return mustTable(
		[]string{"playerFullName", "teamName", "year", "homeRuns", "rbi"},
		[]string{"Aaron Judge", "Yankees", "2022", "62", "131"},
		[]string{"Shohei Ohtani", "Angels", "2022", "34", "95"},
		[]string{"Aaron Judge", "Yankees", "2021", "39", "98"},
		[]string{"Mookie Betts", "Dodgers", "2022", "35", "82"},
	)
}

func TestValue(t *testing.T) {
	Convey("Given cell values", t, func() {
		Convey("Then null cells have no text and no number", func() {
			v := dataset.Null()
			So(v.IsNull(), ShouldBeTrue)
			So(v.String(), ShouldEqual, "")
			_, ok := v.Float()
			So(ok, ShouldBeFalse)
		})

		Convey("Then numbers keep their shortest form", func() {
			So(dataset.Number(0.25).String(), ShouldEqual, "0.25")
			So(dataset.Number(62).String(), ShouldEqual, "62")
			f, ok := dataset.Text(" .312 ").Float()
			So(ok, ShouldBeTrue)
			So(f, ShouldAlmostEqual, 0.312)
		})

		Convey("Then text is not numeric", func() {
			_, ok := dataset.Text("NYY").Float()
			So(ok, ShouldBeFalse)
		})

		Convey("Then booleans render capitalized", func() {
			So(dataset.Bool(true).String(), ShouldEqual, "True")
			So(dataset.Bool(false).Equal(dataset.Text("False")), ShouldBeTrue)
		})
	})
}

func TestTableBuilding(t *testing.T) {
	Convey("Given a new table", t, func() {
		Convey("When the header has duplicate columns", func() {
			_, err := dataset.New("a", "a")

			Convey("Then it is rejected", func() {
				So(errors.Is(err, dataset.ErrDuplicateColumn), ShouldBeTrue)
			})
		})

		Convey("When appending a row of the wrong width", func() {
			tbl := mustTable([]string{"a", "b"})
			err := tbl.AppendRow(dataset.Text("1"))

			Convey("Then it is rejected", func() {
				So(errors.Is(err, dataset.ErrRowWidth), ShouldBeTrue)
				So(tbl.Len(), ShouldEqual, 0)
			})
		})

		Convey("When appending records with differing keys", func() {
			tbl := dataset.Empty()
			tbl.AppendRecord(map[string]dataset.Value{"a": dataset.Text("1")}, []string{"a"})
			tbl.AppendRecord(map[string]dataset.Value{"a": dataset.Text("2"), "b": dataset.Text("x")}, []string{"a", "b"})

			Convey("Then the header grows and earlier rows get nulls", func() {
				So(tbl.Columns(), ShouldResemble, []string{"a", "b"})
				v, err := tbl.Cell(0, "b")
				So(err, ShouldBeNil)
				So(v.IsNull(), ShouldBeTrue)
				So(tbl.NullCount(), ShouldEqual, 1)
			})
		})

		Convey("When adding a constant column", func() {
			tbl := mustTable([]string{"PLAYER"}, []string{"LeBron James"}, []string{"Stephen Curry"})
			tbl.AddConstColumn("Season", dataset.Text("2022-23"))

			Convey("Then every row carries the value", func() {
				seasons, err := tbl.Strings("Season")
				So(err, ShouldBeNil)
				So(seasons, ShouldResemble, []string{"2022-23", "2022-23"})
			})
		})
	})
}

func TestConcatAndFill(t *testing.T) {
	Convey("Given pages with overlapping headers", t, func() {
		p1 := mustTable([]string{"a", "b"}, []string{"1", "2"})
		p2 := mustTable([]string{"b", "c"}, []string{"3", "4"}, []string{"5", "6"})

		Convey("When concatenating", func() {
			out := dataset.Concat(p1, nil, p2)

			Convey("Then rows stay in order under the union header", func() {
				So(out.Columns(), ShouldResemble, []string{"a", "b", "c"})
				So(out.Len(), ShouldEqual, 3)
				b, _ := out.Strings("b")
				So(b, ShouldResemble, []string{"2", "3", "5"})
				So(out.NullCount(), ShouldEqual, 3)
			})

			Convey("And filling nulls with zero leaves none behind", func() {
				n := out.FillNulls(dataset.Number(0))
				So(n, ShouldEqual, 3)
				So(out.NullCount(), ShouldEqual, 0)
				a, _ := out.Strings("a")
				So(a, ShouldResemble, []string{"1", "0", "0"})
			})
		})

		Convey("When concatenating nothing", func() {
			out := dataset.Concat()

			Convey("Then the result is empty", func() {
				So(out.IsEmpty(), ShouldBeTrue)
				So(out.Columns(), ShouldBeEmpty)
			})
		})

		Convey("When duplicated rows are concatenated", func() {
			out := dataset.Concat(p1, p1)

			Convey("Then they are kept", func() {
				So(out.Len(), ShouldEqual, 2)
			})
		})
	})
}

func TestFilter(t *testing.T) {
	Convey("Given a batting table", t, func() {
		tbl := battingTable()

		Convey("When no selection is active", func() {
			out, err := tbl.Filter(dataset.Any("teamName"), dataset.Any("year"))

			Convey("Then the result equals the input", func() {
				So(err, ShouldBeNil)
				So(out.Len(), ShouldEqual, tbl.Len())
				So(out.Columns(), ShouldResemble, tbl.Columns())
				for i := 0; i < tbl.Len(); i++ {
					So(out.Record(i), ShouldResemble, tbl.Record(i))
				}
			})
		})

		Convey("When selecting a team and a year", func() {
			out, err := tbl.Filter(dataset.Select("teamName", "Yankees"), dataset.Select("year", "2022"))

			Convey("Then only matching rows remain", func() {
				So(err, ShouldBeNil)
				So(out.Len(), ShouldEqual, 1)
				So(out.Record(0)["homeRuns"], ShouldEqual, "62")
			})
		})

		Convey("When selecting a value that is not present", func() {
			out, err := tbl.Filter(dataset.Select("teamName", "Expos"))

			Convey("Then the result is empty without error", func() {
				So(err, ShouldBeNil)
				So(out.IsEmpty(), ShouldBeTrue)
			})
		})

		Convey("When selecting an unknown column", func() {
			_, err := tbl.Filter(dataset.Select("franchise", "x"))

			Convey("Then the error names the column", func() {
				So(errors.Is(err, dataset.ErrUnknownColumn), ShouldBeTrue)
			})
		})

		Convey("When filtering by a set of players", func() {
			out, err := tbl.FilterIn("playerFullName", []string{"Aaron Judge", "Mookie Betts"})

			Convey("Then every row of those players is kept", func() {
				So(err, ShouldBeNil)
				So(out.Len(), ShouldEqual, 3)
			})
		})

		Convey("When filtering does not alias the source", func() {
			out, _ := tbl.Filter()
			out.FillNulls(dataset.Number(0))
			out.AddConstColumn("teamName", dataset.Text("X"))

			Convey("Then the source is unchanged", func() {
				teams, _ := tbl.Strings("teamName")
				So(teams[0], ShouldEqual, "Yankees")
			})
		})
	})
}

func TestUniqueAndNumbers(t *testing.T) {
	Convey("Given a batting table", t, func() {
		tbl := battingTable()

		Convey("Then unique values keep first-seen order", func() {
			players, err := tbl.Unique("playerFullName")
			So(err, ShouldBeNil)
			So(players, ShouldResemble, []string{"Aaron Judge", "Shohei Ohtani", "Mookie Betts"})
		})

		Convey("Then numeric columns parse", func() {
			hr, err := tbl.Floats("homeRuns")
			So(err, ShouldBeNil)
			So(hr, ShouldResemble, []float64{62, 34, 39, 35})
		})

		Convey("Then text columns are not numeric", func() {
			_, err := tbl.Floats("teamName")
			So(errors.Is(err, dataset.ErrNotNumeric), ShouldBeTrue)
		})

		Convey("Then group means are sorted by key", func() {
			means, err := tbl.GroupMeans("year", "homeRuns")
			So(err, ShouldBeNil)
			So(means, ShouldHaveLength, 2)
			So(means[0].Key, ShouldEqual, "2021")
			So(means[0].Mean, ShouldEqual, 39)
			So(means[1].Key, ShouldEqual, "2022")
			So(means[1].Mean, ShouldAlmostEqual, (62.0+34+35)/3)
		})
	})
}

func TestNormalization(t *testing.T) {
	Convey("Given a batting table", t, func() {
		tbl := battingTable()

		Convey("When min-max scaling", func() {
			norm, err := tbl.MinMaxNormalize([]string{"homeRuns"})

			Convey("Then values land in [0, 1]", func() {
				So(err, ShouldBeNil)
				So(norm["homeRuns"][0], ShouldEqual, 1)
				So(norm["homeRuns"][1], ShouldEqual, 0)
				So(norm["homeRuns"][2], ShouldAlmostEqual, 5.0/28)
			})
		})

		Convey("When a column is constant", func() {
			flat := mustTable([]string{"p", "x"}, []string{"a", "3"}, []string{"b", "3"})
			norm, err := flat.MinMaxNormalize([]string{"x"})

			Convey("Then it scales to zero", func() {
				So(err, ShouldBeNil)
				So(norm["x"], ShouldResemble, []float64{0, 0})
			})
		})

		Convey("When building per-player profiles", func() {
			profiles, err := tbl.NormalizedProfiles("playerFullName", []string{"Aaron Judge", "Nobody"}, []string{"homeRuns", "rbi"})

			Convey("Then a player's rows are averaged after scaling", func() {
				So(err, ShouldBeNil)
				So(profiles, ShouldHaveLength, 2)
				So(profiles[0].Key, ShouldEqual, "Aaron Judge")
				So(profiles[0].Values[0], ShouldAlmostEqual, (1+5.0/28)/2)
				So(profiles[1].Values, ShouldBeEmpty)
			})
		})
	})
}
