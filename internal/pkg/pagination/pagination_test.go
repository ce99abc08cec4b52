package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		query   string
		want    Params
		wantErr error
	}{
		{"defaults", "", Params{Page: 1, Size: DefaultSize}, nil},
		{"explicit", "item=5&page=3", Params{Page: 3, Size: 5}, nil},
		{"page unparseable falls back to 1", "item=5&page=abc", Params{Page: 1, Size: 5}, nil},
		{"page zero falls back to 1", "item=5&page=0", Params{Page: 1, Size: 5}, nil},
		{"item clamped", "item=1000", Params{Page: 1, Size: MaxSize}, nil},
		{"item not numeric", "item=NaN", Params{}, ErrInvalidPageSize},
		{"item zero", "item=0", Params{}, ErrInvalidPageSize},
		{"item negative", "item=-4", Params{}, ErrInvalidPageSize},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			q, err := url.ParseQuery(c.query)
			require.NoError(t, err)

			got, err := Parse(q)
			if c.wantErr != nil {
				assert.ErrorIs(t, err, c.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestOffsetAndTotalPages(t *testing.T) {
	p := Params{Page: 3, Size: 4}
	assert.Equal(t, 8, p.Offset())
	assert.Equal(t, 4, p.Limit())
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(4))
	assert.Equal(t, 3, p.TotalPages(9))
}

// Walking pages 1..TotalPages over a sorted set visits each index once.
func TestPagesPartitionRecords(t *testing.T) {
	for total := 0; total <= 23; total++ {
		for size := 1; size <= 7; size++ {
			seen := make([]int, total)
			pages := Params{Page: 1, Size: size}.TotalPages(int64(total))
			for page := 1; page <= pages; page++ {
				p := Params{Page: page, Size: size}
				end := min(p.Offset()+p.Limit(), total)
				for i := p.Offset(); i < end; i++ {
					seen[i]++
				}
			}
			for i, n := range seen {
				assert.Equalf(t, 1, n, "total=%d size=%d index=%d", total, size, i)
			}
		}
	}
}
