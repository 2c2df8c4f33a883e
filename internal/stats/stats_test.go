package stats

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in     string
		target int
		suffix string
		ok     bool
	}{
		{"10,000+", 10000, "+", true},
		{"500", 500, "", true},
		{"95%", 95, "%", true},
		{"1,20,000 lives", 120000, " lives", true},
		{"many", 0, "", false},
		{"", 0, "", false},
		{"9,007,199,254,740,991+", 1<<53 - 1, "+", true},
		{"9,007,199,254,740,992+", 0, "", false},
		{"99999999999999999999", 0, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			target, suffix, ok := Parse(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.target, target)
			assert.Equal(t, tc.suffix, suffix)
		})
	}
}

func TestFrames(t *testing.T) {
	frames := Frames(10000, "+", nil)

	require.GreaterOrEqual(t, len(frames), Steps)
	require.LessOrEqual(t, len(frames), Steps+1)
	assert.Equal(t, "100+", frames[0])
	assert.Equal(t, "10,000+", frames[len(frames)-1])
}

func TestFrames_Monotonic(t *testing.T) {
	frames := Frames(37, "", nil)
	prev := -1
	for _, f := range frames {
		n, _, ok := Parse(f)
		require.True(t, ok)
		assert.GreaterOrEqual(t, n, prev)
		prev = n
	}
	assert.Equal(t, 37, prev)
	assert.Equal(t, "0", frames[0], "37/100 floors to zero")
}

func TestFrames_LastIsExact(t *testing.T) {
	for _, target := range []int{1, 7, 99, 101, 123457, 1<<53 - 1} {
		frames := Frames(target, "", nil)
		assert.Equal(t, PrinterFor("en").Sprintf("%d", target), frames[len(frames)-1])
		assert.LessOrEqual(t, len(frames), Steps+1)
	}
}

func TestFrames_ZeroTarget(t *testing.T) {
	assert.Equal(t, []string{"0%"}, Frames(0, "%", nil))
}

func TestPrinterFor(t *testing.T) {
	assert.Equal(t, "12,345", PrinterFor("").Sprintf("%d", 12345))
	assert.Equal(t, "12,345", PrinterFor("not a tag!").Sprintf("%d", 12345))
}

func TestAnimate(t *testing.T) {
	a := Animate(Stat{Key: "donors", Label: "Donors", Display: "2,500+"}, nil)
	assert.Equal(t, 2500, a.Target)
	assert.Equal(t, "+", a.Suffix)
	assert.Equal(t, "2,500+", a.Frames[len(a.Frames)-1])

	none := Animate(Stat{Key: "x", Display: "24x7"}, nil)
	assert.Equal(t, 247, none.Target)

	empty := Animate(Stat{Key: "y", Display: "always"}, nil)
	assert.Empty(t, empty.Frames)
}

func TestSQLStore_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT `key`, label, display FROM site_stat ORDER BY position")).
		WillReturnRows(sqlmock.NewRows([]string{"key", "label", "display"}).
			AddRow("donors", "Registered Donors", "10,000+").
			AddRow("lives", "Lives Saved", "30,000+"))

	got, err := NewSQLStore(sqlx.NewDb(db, "sqlmock")).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Stat{
		{Key: "donors", Label: "Registered Donors", Display: "10,000+"},
		{Key: "lives", Label: "Lives Saved", Display: "30,000+"},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type stubSource struct {
	rows []Stat
	err  error
}

func (s stubSource) List(context.Context) ([]Stat, error) { return s.rows, s.err }

func TestService_All(t *testing.T) {
	defaults := []Stat{{Key: "donors", Display: "10,000+"}}
	ctx := context.Background()

	assert.Equal(t, defaults, NewService(nil, defaults).All(ctx))
	assert.Equal(t, defaults, NewService(stubSource{err: errors.New("down")}, defaults).All(ctx))
	assert.Equal(t, defaults, NewService(stubSource{}, defaults).All(ctx))

	live := []Stat{{Key: "donors", Display: "12,000+"}}
	assert.Equal(t, live, NewService(stubSource{rows: live}, defaults).All(ctx))
}

func TestService_Animated(t *testing.T) {
	svc := NewService(nil, []Stat{
		{Key: "donors", Label: "Donors", Display: "1,20,000+"},
		{Key: "motto", Label: "Always", Display: "24x7 care"},
	})

	got := svc.Animated(context.Background(), "en-IN")
	require.Len(t, got, 2)
	want := PrinterFor("en-IN").Sprintf("%d", 120000) + "+"
	assert.Equal(t, want, got[0].Frames[len(got[0].Frames)-1])
	assert.Equal(t, "donors", got[0].Key)
	assert.Equal(t, 2, svc.frames.Len())

	again := svc.Animated(context.Background(), "en-IN")
	assert.Equal(t, got, again)
	assert.Equal(t, 2, svc.frames.Len(), "served from cache")

	us := svc.Animated(context.Background(), "en-US")
	assert.Equal(t, "120,000+", us[0].Frames[len(us[0].Frames)-1])
	assert.Equal(t, 4, svc.frames.Len())
}
