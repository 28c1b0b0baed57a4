package freqlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lepak.sg/stacklist/seq"
)

// auto123 returns [3, 2, 1], all automatic with count 1.
func auto123() *List[int] {
	l := New[int]()
	l.AddToAutomatic(1)
	l.AddToAutomatic(2)
	l.AddToAutomatic(3)
	return l
}

// manual5 returns [5, 3, 2, 1] with 5 on manual priority.
func manual5() *List[int] {
	l := auto123()
	l.AddToManual(5)
	return l
}

// checkInvariants fails the test if the list's internal state is
// inconsistent.
func checkInvariants[E comparable](t *testing.T, l *List[E]) {
	t.Helper()

	seen := make(map[E]bool)
	if l.manual != nil {
		assert.GreaterOrEqual(t, l.manual.count, 1, "manual count")
		seen[l.manual.elem] = true
	}

	for i, en := range l.auto {
		assert.GreaterOrEqualf(t, en.count, 1, "count at %d", i)
		assert.Falsef(t, seen[en.elem], "%v appears twice", en.elem)
		seen[en.elem] = true

		if i > 0 {
			assert.GreaterOrEqualf(t, l.auto[i-1].count, en.count,
				"automatic region out of order at %d", i)
		}
	}

	assert.Equal(t, len(seen), l.Len())

	for e := range seen {
		assert.NotEqualf(t, l.ContainsInManual(e), l.ContainsInAutomatic(e),
			"%v must be in exactly one region", e)
	}
}

func TestNew(t *testing.T) {
	l := New[string]()
	assert.Equal(t, 0, l.Len())
	assert.True(t, l.IsEmpty())
	assert.Empty(t, l.ToSlice())
	assert.False(t, l.Iterator().HasNext())

	var zero List[string]
	assert.True(t, zero.IsEmpty())
	zero.Add("a")
	assert.Equal(t, []string{"a"}, zero.ToSlice())
}

func TestOf(t *testing.T) {
	l := Of(5, 4, 3)
	assert.Equal(t, 3, l.Len())
	for _, e := range []int{3, 4, 5} {
		assert.True(t, l.Contains(e))
		assert.True(t, l.ContainsInAutomatic(e))
		assert.False(t, l.ContainsInManual(e))
	}
	// newest first among ties
	assert.Equal(t, []int{3, 4, 5}, l.ToSlice())
}

func TestIsEmpty(t *testing.T) {
	l := New[int]()
	assert.True(t, l.IsEmpty())
	l.AddToAutomatic(5)
	assert.False(t, l.IsEmpty())

	l = New[int]()
	l.AddToManual(5)
	assert.False(t, l.IsEmpty())
	l.AddToAutomatic(6)
	assert.False(t, l.IsEmpty())
	assert.Equal(t, 2, l.Len())
}

func TestClear(t *testing.T) {
	l := manual5()
	l.Clear()
	assert.True(t, l.IsEmpty())
	assert.False(t, l.Contains(5))
	assert.False(t, l.Iterator().HasNext())
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name string
		do   func(t *testing.T) *List[int]
		want []int
	}{
		{
			name: "A: counts order the automatic region",
			do: func(t *testing.T) *List[int] {
				l := New[int]()
				assert.True(t, l.AddToAutomatic(1))
				assert.True(t, l.AddToAutomatic(2))
				assert.False(t, l.AddToAutomatic(2), "2 was already at the front")
				assert.Equal(t, 2, l.Len())
				return l
			},
			want: []int{2, 1},
		},
		{
			name: "B: manual element goes first",
			do: func(t *testing.T) *List[int] {
				l := Of(1, 2, 2)
				assert.True(t, l.AddToManual(5))

				first, err := l.Get(0)
				require.NoError(t, err)
				assert.Equal(t, 5, first)
				assert.True(t, l.ContainsInManual(5))
				return l
			},
			want: []int{5, 2, 1},
		},
		{
			name: "C: demoted element is placed by its count",
			do: func(t *testing.T) *List[int] {
				l := Of(1, 2, 2)
				l.AddToManual(5)
				require.NoError(t, l.RelocateManualToAutomatic())

				assert.True(t, l.ContainsInAutomatic(5))
				assert.False(t, l.ContainsInManual(5))
				assert.Equal(t, 1, l.Count(5))
				return l
			},
			// 5 ties with 1 and goes ahead of it, but stays behind 2
			want: []int{2, 5, 1},
		},
		{
			name: "D: relocate automatic to manual",
			do: func(t *testing.T) *List[int] {
				l := auto123()
				require.NoError(t, l.RelocateAutomaticToManual(1))
				assert.ErrorIs(t, l.RelocateAutomaticToManual(1), ErrInvalidArgument)
				return l
			},
			want: []int{1, 3, 2},
		},
		{
			name: "E: iterator removes the last element",
			do: func(t *testing.T) *List[int] {
				l := auto123()
				it := l.Iterator()
				for it.HasNext() {
					_, err := it.Next()
					require.NoError(t, err)
				}
				require.NoError(t, it.Remove())
				assert.Equal(t, 2, l.Len())

				_, err := it.Next()
				assert.ErrorIs(t, err, ErrNoMoreElements)
				return l
			},
			want: []int{3, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.do(t)
			assert.Equal(t, tt.want, l.ToSlice())
			checkInvariants(t, l)
		})
	}
}

func TestRejectsNil(t *testing.T) {
	l := New[*int]()
	one := 1
	l.Add(&one)

	for name, f := range map[string]func(){
		"Add":                       func() { l.Add(nil) },
		"AddToAutomatic":            func() { l.AddToAutomatic(nil) },
		"AddToManual":               func() { l.AddToManual(nil) },
		"Remove":                    func() { l.Remove(nil) },
		"Contains":                  func() { l.Contains(nil) },
		"ContainsInAutomatic":       func() { l.ContainsInAutomatic(nil) },
		"ContainsInManual":          func() { l.ContainsInManual(nil) },
		"IndexOf":                   func() { l.IndexOf(nil) },
		"RelocateAutomaticToManual": func() { _ = l.RelocateAutomaticToManual(nil) },
		"RetainAll":                 func() { l.RetainAll(&one, nil) },
	} {
		t.Run(name, func(t *testing.T) {
			assert.PanicsWithError(t, ErrElementRequired.Error(), f)
		})
	}

	assert.Equal(t, []*int{&one}, l.ToSlice())
}

func TestRejectsNilInterface(t *testing.T) {
	l := New[any]()
	l.Add("a")
	l.Add(1)
	assert.Equal(t, []any{1, "a"}, l.ToSlice())

	assert.PanicsWithError(t, ErrElementRequired.Error(), func() {
		l.Add(nil)
	})
}

func TestPinnedIsNotAutomatic(t *testing.T) {
	l := New[int]()
	l.AddToAutomatic(3)
	l.AddToAutomatic(2)
	l.AddToManual(5)
	require.Equal(t, []int{5, 2, 3}, l.ToSlice())

	assert.True(t, l.ContainsInManual(5))
	assert.False(t, l.ContainsInAutomatic(5))
	assert.Equal(t, 0, l.IndexOf(5))
	assert.Equal(t, 1, l.Count(5))

	err := l.RelocateAutomaticToManual(5)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, []int{5, 2, 3}, l.ToSlice())
	assert.True(t, l.ContainsInManual(5))
	checkInvariants(t, l)
}

func TestRelocateAutomaticToManual(t *testing.T) {
	t.Run("no current manual", func(t *testing.T) {
		l := auto123()
		require.NoError(t, l.RelocateAutomaticToManual(1))
		assert.True(t, l.ContainsInManual(1))
		assert.False(t, l.ContainsInAutomatic(1))
		assert.Equal(t, []int{1, 3, 2}, l.ToSlice())
		assert.Equal(t, 1, l.Count(1))
		checkInvariants(t, l)
	})

	t.Run("current manual is demoted", func(t *testing.T) {
		l := manual5()
		require.NoError(t, l.RelocateAutomaticToManual(1))
		assert.True(t, l.ContainsInManual(1))
		assert.True(t, l.ContainsInAutomatic(5))
		assert.Equal(t, []int{1, 5, 3, 2}, l.ToSlice())
		checkInvariants(t, l)
	})

	for name, e := range map[string]int{
		"absent":        9,
		"manual itself": 5,
	} {
		t.Run(name, func(t *testing.T) {
			l := manual5()
			err := l.RelocateAutomaticToManual(e)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Equal(t, []int{5, 3, 2, 1}, l.ToSlice())
			checkInvariants(t, l)
		})
	}
}

func TestRelocateManualToAutomatic(t *testing.T) {
	l := manual5()
	require.NoError(t, l.RelocateManualToAutomatic())
	assert.True(t, l.ContainsInAutomatic(5))
	assert.False(t, l.ContainsInManual(5))
	assert.Equal(t, []int{5, 3, 2, 1}, l.ToSlice())
	checkInvariants(t, l)

	err := l.RelocateManualToAutomatic()
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, []int{5, 3, 2, 1}, l.ToSlice())
}

func TestRearrangesPriority(t *testing.T) {
	l := auto123()
	l.AddToAutomatic(2)
	l.AddToAutomatic(1)
	assert.Equal(t, []int{1, 2, 3}, l.ToSlice())
	checkInvariants(t, l)
}

func TestManualTrumpsCount(t *testing.T) {
	l := manual5()
	for _, e := range []int{1, 2, 3, 1, 2, 3} {
		l.AddToAutomatic(e)
	}

	assert.True(t, l.ContainsInManual(5))
	assert.Equal(t, []int{5, 3, 2, 1}, l.ToSlice())
	assert.Equal(t, 1, l.Count(5))
	assert.Equal(t, 3, l.Count(1))
	checkInvariants(t, l)
}

func TestManualToAutomaticOrdering(t *testing.T) {
	l := manual5()
	l.AddToManual(5)
	l.AddToAutomatic(2)
	l.AddToAutomatic(2)
	l.AddToAutomatic(3)
	require.NoError(t, l.RelocateManualToAutomatic())

	assert.Equal(t, []int{2, 5, 3, 1}, l.ToSlice())
	assert.Equal(t, []int{3, 2, 2, 1}, []int{l.Count(2), l.Count(5), l.Count(3), l.Count(1)})
	checkInvariants(t, l)
}

func TestAddToManual(t *testing.T) {
	t.Run("from automatic", func(t *testing.T) {
		l := auto123()
		assert.True(t, l.AddToManual(2))
		assert.True(t, l.ContainsInManual(2))
		assert.False(t, l.ContainsInAutomatic(2))
		assert.Equal(t, 2, l.Count(2))
		assert.Equal(t, []int{2, 3, 1}, l.ToSlice())
	})

	t.Run("new element demotes current manual", func(t *testing.T) {
		l := manual5()
		assert.True(t, l.AddToManual(9))
		assert.Equal(t, 5, l.Len())
		assert.True(t, l.ContainsInManual(9))
		assert.True(t, l.ContainsInAutomatic(5))
		assert.Equal(t, []int{9, 5, 3, 2, 1}, l.ToSlice())
		checkInvariants(t, l)
	})

	t.Run("already manual only counts", func(t *testing.T) {
		l := manual5()
		for i := 0; i < 3; i++ {
			assert.False(t, l.AddToManual(5))
			assert.Equal(t, 0, l.IndexOf(5))
		}
		assert.Equal(t, 4, l.Count(5))
		assert.Equal(t, []int{5, 3, 2, 1}, l.ToSlice())
	})
}

func TestAddToAutomaticFromManual(t *testing.T) {
	l := manual5()
	l.AddToManual(5)

	// count is carried over but not incremented
	assert.True(t, l.AddToAutomatic(5))
	assert.False(t, l.ContainsInManual(5))
	assert.Equal(t, 2, l.Count(5))
	assert.Equal(t, []int{5, 3, 2, 1}, l.ToSlice())
	checkInvariants(t, l)
}

func TestAddReturn(t *testing.T) {
	l := manual5()
	assert.False(t, l.Add(5))
	assert.True(t, l.Add(2))
	assert.False(t, l.Add(2))
	assert.True(t, l.Add(1))

	assert.True(t, l.ContainsInManual(5))
	assert.Equal(t, 2, l.Count(5))
	assert.True(t, l.ContainsInAutomatic(2))
	assert.True(t, l.ContainsInAutomatic(1))
	assert.Equal(t, []int{5, 2, 1, 3}, l.ToSlice())
}

func TestAddAll(t *testing.T) {
	t.Run("sorted set", func(t *testing.T) {
		l := manual5()
		changed, err := l.AddAll(seq.Sorted(map[int]struct{}{5: {}}))
		require.NoError(t, err)
		assert.False(t, changed)

		changed, err = l.AddAll(seq.Sorted(map[int]struct{}{5: {}, 9: {}}))
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, 5, l.Len())
		assert.True(t, l.ContainsInManual(5))
		assert.True(t, l.ContainsInAutomatic(9))
	})

	t.Run("slice with repeats", func(t *testing.T) {
		l := New[string]()
		changed, err := l.AddAll(seq.Of("a", "b", "a", "c", "a"))
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, []string{"a", "c", "b"}, l.ToSlice())
		assert.Equal(t, 3, l.Count("a"))
	})

	t.Run("unordered set", func(t *testing.T) {
		l := auto123()
		_, err := l.AddAll(seq.Set(map[int]struct{}{5: {}, 2: {}}))
		assert.ErrorIs(t, err, ErrUnordered)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Equal(t, []int{3, 2, 1}, l.ToSlice())
	})

	t.Run("itself", func(t *testing.T) {
		l := manual5()
		_, err := l.AddAll(l.All())
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Equal(t, []int{5, 3, 2, 1}, l.ToSlice())
	})

	t.Run("another list", func(t *testing.T) {
		l := manual5()
		other := Of(7, 7, 3)
		changed, err := l.AddAll(other.All())
		require.NoError(t, err)
		assert.True(t, changed)
		// 7 arrives first, then 3 overtakes it with a count of 2
		assert.Equal(t, []int{5, 3, 7, 2, 1}, l.ToSlice())
	})

	t.Run("nil element", func(t *testing.T) {
		one := 1
		l := New[*int]()
		_, err := l.AddAll(seq.Of(&one, nil))
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.True(t, l.IsEmpty())
	})

	t.Run("nil source", func(t *testing.T) {
		_, err := New[int]().AddAll(nil)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestContains(t *testing.T) {
	l := manual5()
	assert.True(t, l.Contains(5))
	assert.True(t, l.Contains(1))
	assert.True(t, l.ContainsInManual(5))
	assert.True(t, l.ContainsInAutomatic(1))
	assert.False(t, l.ContainsInManual(1))
	assert.False(t, l.ContainsInAutomatic(5))
	assert.False(t, l.Contains(9))
}

func TestContainsAll(t *testing.T) {
	l := manual5()
	assert.True(t, l.ContainsAll(1, 2, 3, 5))
	assert.False(t, l.ContainsAll(1, 2, 3, 5, 9))
	assert.False(t, l.ContainsAll(1, 9))
	assert.True(t, l.ContainsAll(5))
	assert.True(t, l.ContainsAll())
}

func TestIndexOf(t *testing.T) {
	l := auto123()
	assert.Equal(t, 0, l.IndexOf(3))
	assert.Equal(t, 1, l.IndexOf(2))
	assert.Equal(t, 2, l.IndexOf(1))

	l.AddToAutomatic(1)
	l.AddToManual(5)
	assert.Equal(t, 0, l.IndexOf(5))
	assert.Equal(t, 1, l.IndexOf(1))
	assert.Equal(t, 2, l.IndexOf(3))
	assert.Equal(t, 3, l.IndexOf(2))
	assert.Equal(t, -1, l.IndexOf(9))
}

func TestGet(t *testing.T) {
	for name, l := range map[string]*List[int]{
		"automatic": auto123(),
		"manual":    manual5(),
	} {
		t.Run(name, func(t *testing.T) {
			it := l.Iterator()
			for i := 0; i < l.Len(); i++ {
				want, err := it.Next()
				require.NoError(t, err)

				got, err := l.Get(i)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}

			for _, i := range []int{-1, l.Len(), l.Len() + 10} {
				_, err := l.Get(i)
				assert.ErrorIsf(t, err, ErrOutOfRange, "index %d", i)
			}
		})
	}
}

func TestGetManualRegardlessOfCount(t *testing.T) {
	l := Of(1, 1, 1, 2, 2)
	l.AddToManual(3)
	first, err := l.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 3, first)
}

func TestRemove(t *testing.T) {
	l := auto123()
	assert.False(t, l.Remove(9))
	assert.Equal(t, 3, l.Len())

	l = manual5()
	assert.True(t, l.Remove(3))
	assert.False(t, l.ContainsInAutomatic(3))
	assert.Equal(t, 3, l.Len())

	assert.True(t, l.Remove(5))
	assert.False(t, l.ContainsInManual(5))
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []int{2, 1}, l.ToSlice())

	// counts do not matter
	l = Of(4, 4, 4)
	assert.True(t, l.Remove(4))
	assert.True(t, l.IsEmpty())
}

func TestRemoveAll(t *testing.T) {
	l := manual5()
	assert.True(t, l.RemoveAll(2))
	assert.False(t, l.RemoveAll(2))
	assert.True(t, l.RemoveAll(2, 5))
	assert.Equal(t, 2, l.Len())

	l.Clear()
	assert.False(t, l.RemoveAll(2, 5))
}

func TestRetainAll(t *testing.T) {
	l := manual5()
	assert.True(t, l.RetainAll(2, 5, 1))
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []int{5, 2, 1}, l.ToSlice())

	assert.False(t, l.RetainAll(2, 5, 1, 9))
	assert.True(t, l.RetainAll())
	assert.True(t, l.IsEmpty())
}

func TestRetainFunc(t *testing.T) {
	l := manual5()
	assert.True(t, l.RetainFunc(func(e int) bool { return e%2 == 1 }))
	assert.Equal(t, []int{5, 3, 1}, l.ToSlice())
	assert.False(t, l.RetainFunc(func(int) bool { return true }))

	tests := []struct {
		name string
		keep func(int) bool
		want []int
	}{
		{"drops manual", func(e int) bool { return e != 5 }, []int{3, 2, 1}},
		{"drops neighbours", func(e int) bool { return e == 5 || e == 1 }, []int{5, 1}},
		{"drops all", func(int) bool { return false }, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := manual5()
			assert.True(t, l.RetainFunc(tt.keep))
			assert.Equal(t, tt.want, l.ToSlice())
			checkInvariants(t, l)
		})
	}
}

func TestToSlice(t *testing.T) {
	l := manual5()
	l.AddToAutomatic(9)

	s := l.ToSlice()
	assert.Len(t, s, 5)
	for i := range s {
		got, err := l.Get(i)
		require.NoError(t, err)
		assert.Equal(t, got, s[i])
	}

	// the slice is a copy
	s[0] = 100
	assert.True(t, l.ContainsInManual(5))
}

func TestCopyTo(t *testing.T) {
	l := manual5()
	l.AddToAutomatic(9)
	want := []int{5, 9, 3, 2, 1}

	assert.Equal(t, want, l.CopyTo(nil))
	assert.Equal(t, want, l.CopyTo(make([]int, 0)))

	exact := make([]int, 5)
	got := l.CopyTo(exact)
	assert.Equal(t, want, got)
	assert.Equal(t, make([]int, 5), exact, "a slice that is not longer is not reused")

	extra := []int{0, 0, 0, 0, 0, 6, 7}
	got = l.CopyTo(extra)
	assert.Equal(t, []int{5, 9, 3, 2, 1, 0, 7}, got)
	assert.Same(t, &extra[0], &got[0])
}
