package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/babynames/internal/domain/model"
)

func sampleRows() []model.Row {
	return []model.Row{
		{Record: model.Record{Name: "Alice", Sex: model.Female, Count: 100, Year: 1999}, Proportion: 1},
		{Record: model.Record{Name: "Bob", Sex: model.Male, Count: 50, Year: 1999}, Proportion: 1},
	}
}

func TestMemoryCache(t *testing.T) {
	Convey("Given an empty memory cache", t, func() {
		ctx := context.Background()
		cache := NewMemoryCache()

		Convey("Then Get reports ErrNotLoaded", func() {
			_, err := cache.Get(ctx, "http://example/names.zip")
			So(errors.Is(err, ErrNotLoaded), ShouldBeTrue)
			So(cache.Len(ctx), ShouldEqual, 0)
		})

		Convey("Then an empty key is rejected", func() {
			_, err := cache.GetOrLoad(ctx, "", func(context.Context, string) ([]model.Row, error) {
				return sampleRows(), nil
			})
			So(errors.Is(err, ErrEmptyKey), ShouldBeTrue)
		})

		Convey("When loading a URI twice", func() {
			calls := 0
			load := func(_ context.Context, uri string) ([]model.Row, error) {
				calls++
				return sampleRows(), nil
			}
			first, err := cache.GetOrLoad(ctx, "u1", load)
			So(err, ShouldBeNil)
			second, err := cache.GetOrLoad(ctx, "u1", load)
			So(err, ShouldBeNil)

			Convey("Then the loader runs once and the same entry is shared", func() {
				So(calls, ShouldEqual, 1)
				So(second, ShouldEqual, first)
				So(first.URI, ShouldEqual, "u1")
				So(first.Shape.Records, ShouldEqual, 2)
				So(first.Shape.Years, ShouldEqual, 1)
				So(first.Shape.Groups, ShouldEqual, 2)
				_, err := uuid.Parse(first.LoadID)
				So(err, ShouldBeNil)
			})

			Convey("Then a different URI is a separate entry", func() {
				other, err := cache.GetOrLoad(ctx, "u2", load)
				So(err, ShouldBeNil)
				So(calls, ShouldEqual, 2)
				So(other.LoadID, ShouldNotEqual, first.LoadID)
				So(cache.Len(ctx), ShouldEqual, 2)
			})
		})

		Convey("When a load fails", func() {
			boom := errors.New("boom")
			_, err := cache.GetOrLoad(ctx, "u1", func(context.Context, string) ([]model.Row, error) {
				return nil, boom
			})

			Convey("Then the error is returned and nothing is cached", func() {
				So(errors.Is(err, boom), ShouldBeTrue)
				So(cache.Len(ctx), ShouldEqual, 0)
			})

			Convey("Then a later load may succeed", func() {
				e, err := cache.GetOrLoad(ctx, "u1", func(context.Context, string) ([]model.Row, error) {
					return sampleRows(), nil
				})
				So(err, ShouldBeNil)
				So(e.Rows, ShouldHaveLength, 2)
			})
		})
	})

	Convey("Given concurrent first requests for one URI", t, func() {
		ctx := context.Background()
		cache := NewMemoryCache()
		var calls atomic.Int32
		release := make(chan struct{})
		load := func(context.Context, string) ([]model.Row, error) {
			calls.Add(1)
			<-release
			return sampleRows(), nil
		}

		const callers = 16
		var wg sync.WaitGroup
		results := make([]*Entry, callers)
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				e, err := cache.GetOrLoad(ctx, "shared", load)
				if err == nil {
					results[i] = e
				}
			}(i)
		}
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		Convey("Then they collapse onto a single load", func() {
			So(calls.Load(), ShouldEqual, 1)
			for _, e := range results {
				So(e, ShouldEqual, results[0])
			}
		})
	})

	Convey("Given a slow load whose first caller gives up", t, func() {
		cache := NewMemoryCache()
		var loads int32
		started := make(chan struct{}, 2)
		release := make(chan struct{})
		load := func(ctx context.Context, _ string) ([]model.Row, error) {
			atomic.AddInt32(&loads, 1)
			started <- struct{}{}
			select {
			case <-release:
				return sampleRows(), nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		firstCtx, cancel := context.WithCancel(context.Background())
		firstErr := make(chan error, 1)
		go func() {
			_, err := cache.GetOrLoad(firstCtx, "slow", load)
			firstErr <- err
		}()
		<-started
		cancel()
		errA := <-firstErr

		type result struct {
			e   *Entry
			err error
		}
		second := make(chan result, 1)
		go func() {
			e, err := cache.GetOrLoad(context.Background(), "slow", load)
			second <- result{e, err}
		}()
		time.Sleep(20 * time.Millisecond)
		close(release)
		res := <-second

		Convey("Then only the cancelled caller fails", func() {
			So(errors.Is(errA, context.Canceled), ShouldBeTrue)
			So(res.err, ShouldBeNil)
			So(res.e.URI, ShouldEqual, "slow")
		})

		Convey("Then the load keeps running and is shared", func() {
			So(atomic.LoadInt32(&loads), ShouldEqual, 1)
			So(cache.Len(context.Background()), ShouldEqual, 1)
		})
	})

	Convey("Given injected clock and id generator", t, func() {
		at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		cache := NewMemoryCache(
			WithClock(func() time.Time { return at }),
			WithIDGenerator(func() string { return "load-1" }),
		)
		e, err := cache.GetOrLoad(context.Background(), "u", func(context.Context, string) ([]model.Row, error) {
			return sampleRows(), nil
		})

		Convey("Then the entry uses them", func() {
			So(err, ShouldBeNil)
			So(e.LoadID, ShouldEqual, "load-1")
			So(e.LoadedAt, ShouldEqual, at)
			So(e.Duration, ShouldEqual, time.Duration(0))
		})
	})
}
