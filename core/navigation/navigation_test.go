package navigation_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/spakit/core/navigation"
	"github.com/dmitrymomot/spakit/core/router"
	"github.com/dmitrymomot/spakit/core/view"
)

type mountPoint struct {
	mu       sync.Mutex
	mounted  []string
	children []string
	clears   int
	failOn   string
}

func (m *mountPoint) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.children = nil
	m.clears++
}

func (m *mountPoint) Append(_ context.Context, v *view.Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v.Name() == m.failOn {
		return errors.New("append failed")
	}
	m.children = append(m.children, v.Name())
	m.mounted = append(m.mounted, v.Name())
	return nil
}

func (m *mountPoint) snapshot() (mounted, children []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.mounted...), append([]string(nil), m.children...)
}

type viewLog struct {
	mu      sync.Mutex
	handles map[string][]*view.Handle
}

func (l *viewLog) factory(name string) view.Factory {
	return func(context.Context, ...string) (*view.Handle, error) {
		h := view.New(name, nil)
		l.mu.Lock()
		if l.handles == nil {
			l.handles = map[string][]*view.Handle{}
		}
		l.handles[name] = append(l.handles[name], h)
		l.mu.Unlock()
		return h, nil
	}
}

func (l *viewLog) get(name string) []*view.Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*view.Handle(nil), l.handles[name]...)
}

func setup(t *testing.T, start string) (*navigation.Controller, *navigation.MemoryHistory, *mountPoint, *viewLog, *router.Router) {
	t.Helper()

	views := &viewLog{}
	r := router.New()
	r.Handle(router.Exact("/"), views.factory("home"))
	r.Handle(router.Exact("/about"), views.factory("about"))

	h, err := navigation.NewMemoryHistory(start)
	require.NoError(t, err)
	m := &mountPoint{}
	c := navigation.New(r, h, m)
	return c, h, m, views, r
}

func TestController_Start(t *testing.T) {
	t.Parallel()

	c, _, m, _, _ := setup(t, "https://app.test/")
	assert.Equal(t, navigation.Idle, c.State())

	require.NoError(t, c.Start(context.Background()).Await())

	assert.Equal(t, navigation.Mounted, c.State())
	require.NotNil(t, c.Current())
	assert.Equal(t, "home", c.Current().Name())
	_, children := m.snapshot()
	assert.Equal(t, []string{"home"}, children)
}

func TestController_PrimaryClickRendersOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, h, m, views, _ := setup(t, "https://app.test/")
	require.NoError(t, c.Start(ctx).Await())

	link := &navigation.AnchorElement{Href: "/about"}
	ev := &navigation.ClickEvent{Target: &navigation.Element{Tag: "span", Parent: link}}

	require.True(t, c.HandleClick(ctx, ev))
	c.Wait()

	assert.True(t, ev.DefaultPrevented())
	assert.True(t, ev.PropagationStopped())
	assert.Equal(t, "/about", h.Location().Path)
	assert.Equal(t, 2, h.Len())

	mounted, children := m.snapshot()
	assert.Equal(t, []string{"home", "about"}, mounted)
	assert.Equal(t, []string{"about"}, children)
	assert.Len(t, views.get("about"), 1)

	home := views.get("home")
	require.Len(t, home, 1)
	assert.True(t, home[0].Disconnected())
	assert.False(t, views.get("about")[0].Disconnected())
}

func TestController_HandleClickIgnored(t *testing.T) {
	t.Parallel()

	link := func(href, target string) navigation.Node {
		return &navigation.Element{Tag: "span", Parent: &navigation.AnchorElement{Href: href, Target: target}}
	}
	prevented := &navigation.ClickEvent{Target: link("/about", "")}
	prevented.PreventDefault()

	tests := []struct {
		name string
		ev   *navigation.ClickEvent
	}{
		{name: "nil event", ev: nil},
		{name: "already prevented", ev: prevented},
		{name: "ctrl", ev: &navigation.ClickEvent{Target: link("/about", ""), CtrlKey: true}},
		{name: "meta", ev: &navigation.ClickEvent{Target: link("/about", ""), MetaKey: true}},
		{name: "shift", ev: &navigation.ClickEvent{Target: link("/about", ""), ShiftKey: true}},
		{name: "alt", ev: &navigation.ClickEvent{Target: link("/about", ""), AltKey: true}},
		{name: "middle button", ev: &navigation.ClickEvent{Target: link("/about", ""), Button: 1}},
		{name: "no anchor", ev: &navigation.ClickEvent{Target: &navigation.Element{Tag: "div"}}},
		{name: "no target", ev: &navigation.ClickEvent{}},
		{name: "blank target", ev: &navigation.ClickEvent{Target: link("/about", "_blank")}},
		{name: "cross origin", ev: &navigation.ClickEvent{Target: link("https://elsewhere.test/about", "")}},
		{name: "other scheme", ev: &navigation.ClickEvent{Target: link("mailto:ann@app.test", "")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, h, m, _, _ := setup(t, "https://app.test/")
			assert.False(t, c.HandleClick(context.Background(), tt.ev))
			c.Wait()

			assert.Equal(t, 1, h.Len())
			mounted, _ := m.snapshot()
			assert.Empty(t, mounted)
			if tt.ev != nil && tt.name != "already prevented" {
				assert.False(t, tt.ev.DefaultPrevented())
			}
		})
	}
}

func TestController_SelfTargetIsIntercepted(t *testing.T) {
	t.Parallel()

	c, h, _, _, _ := setup(t, "https://app.test/")
	ev := &navigation.ClickEvent{Target: &navigation.AnchorElement{Href: "https://app.test/about", Target: "_self"}}

	assert.True(t, c.HandleClick(context.Background(), ev))
	c.Wait()
	assert.Equal(t, "/about", h.Location().Path)
	assert.Equal(t, "about", c.Current().Name())
}

func TestController_StaleRenderIsDiscarded(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	release := make(chan struct{})
	started := make(chan struct{})
	var slow atomic.Pointer[view.Handle]

	r := router.New()
	r.Handle(router.Exact("/slow"), func(context.Context, ...string) (*view.Handle, error) {
		close(started)
		<-release
		h := view.New("slow", nil)
		slow.Store(h)
		return h, nil
	})
	r.Handle(router.Exact("/fast"), func(context.Context, ...string) (*view.Handle, error) {
		return view.New("fast", nil), nil
	})

	h, err := navigation.NewMemoryHistory("https://app.test/slow")
	require.NoError(t, err)
	m := &mountPoint{}
	c := navigation.New(r, h, m)

	first := c.Start(ctx)
	<-started

	second, err := c.Navigate(ctx, "/fast")
	require.NoError(t, err)
	require.NoError(t, second.Await())
	assert.Equal(t, "fast", c.Current().Name())

	close(release)
	assert.ErrorIs(t, first.Await(), navigation.ErrStale)

	mounted, children := m.snapshot()
	assert.Equal(t, []string{"fast"}, mounted)
	assert.Equal(t, []string{"fast"}, children)
	require.NotNil(t, slow.Load())
	assert.True(t, slow.Load().Disconnected())
	assert.Equal(t, navigation.Mounted, c.State())
}

func TestController_DisconnectFiresOncePerView(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _, _, views, _ := setup(t, "https://app.test/")

	var disconnects atomic.Int32
	require.NoError(t, c.Start(ctx).Await())
	c.Current().OnDisconnect(func() { disconnects.Add(1) })

	for _, href := range []string{"/about", "/", "/about"} {
		f, err := c.Navigate(ctx, href)
		require.NoError(t, err)
		require.NoError(t, f.Await())
	}

	assert.Equal(t, int32(1), disconnects.Load())
	for _, name := range []string{"home", "about"} {
		for i, h := range views.get(name) {
			last := name == "about" && i == len(views.get("about"))-1
			assert.Equal(t, !last, h.Disconnected(), "%s #%d", name, i)
		}
	}
}

func TestController_DisconnectHookMayNavigate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, h, m, views, _ := setup(t, "https://app.test/")
	require.NoError(t, c.Start(ctx).Await())

	var redirected atomic.Bool
	c.Current().OnDisconnect(func() {
		_, err := c.Redirect(ctx, "/")
		redirected.Store(err == nil)
	})

	f, err := c.Navigate(ctx, "/about")
	require.NoError(t, err)
	assert.ErrorIs(t, f.Await(), navigation.ErrStale)
	c.Wait()

	assert.True(t, redirected.Load())
	assert.Equal(t, "/", h.Location().Path)
	require.NotNil(t, c.Current())
	assert.Equal(t, "home", c.Current().Name())
	assert.Len(t, views.get("home"), 2)
	assert.True(t, views.get("about")[0].Disconnected())
	assert.Equal(t, navigation.Mounted, c.State())
	_, children := m.snapshot()
	assert.Equal(t, []string{"home"}, children)
}

func TestController_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var reported []error
	var mu sync.Mutex

	views := &viewLog{}
	r := router.New()
	r.Handle(router.Exact("/"), views.factory("home"))
	h, err := navigation.NewMemoryHistory("https://app.test/")
	require.NoError(t, err)
	c := navigation.New(r, h, &mountPoint{}, navigation.WithErrorHandler(func(_ context.Context, path string, err error) {
		mu.Lock()
		reported = append(reported, err)
		mu.Unlock()
		assert.Equal(t, "/missing", path)
	}))

	require.NoError(t, c.Start(ctx).Await())

	f, err := c.Navigate(ctx, "/missing")
	require.NoError(t, err)
	assert.ErrorIs(t, f.Await(), navigation.ErrNotFound)

	assert.Equal(t, navigation.Mounted, c.State())
	assert.Equal(t, "home", c.Current().Name())
	mu.Lock()
	assert.Len(t, reported, 1)
	mu.Unlock()
}

func TestController_NotFoundView(t *testing.T) {
	t.Parallel()

	views := &viewLog{}
	r := router.New(router.WithNotFound(views.factory("not-found")))
	h, err := navigation.NewMemoryHistory("https://app.test/missing")
	require.NoError(t, err)
	c := navigation.New(r, h, &mountPoint{})

	require.NoError(t, c.Start(context.Background()).Await())
	assert.Equal(t, "not-found", c.Current().Name())
}

func TestController_RenderErrorFromIdle(t *testing.T) {
	t.Parallel()

	errLoad := errors.New("load failed")
	r := router.New()
	r.Handle(router.Exact("/"), func(context.Context, ...string) (*view.Handle, error) {
		return nil, errLoad
	})
	h, err := navigation.NewMemoryHistory("https://app.test/")
	require.NoError(t, err)
	c := navigation.New(r, h, &mountPoint{})

	assert.ErrorIs(t, c.Start(context.Background()).Await(), errLoad)
	assert.Equal(t, navigation.Idle, c.State())
	assert.Nil(t, c.Current())
}

func TestController_AppendFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	views := &viewLog{}
	r := router.New()
	r.Handle(router.Exact("/"), views.factory("home"))
	r.Handle(router.Exact("/about"), views.factory("about"))
	h, err := navigation.NewMemoryHistory("https://app.test/")
	require.NoError(t, err)
	c := navigation.New(r, h, &mountPoint{failOn: "about"})

	require.NoError(t, c.Start(ctx).Await())
	f, err := c.Navigate(ctx, "/about")
	require.NoError(t, err)
	require.Error(t, f.Await())

	assert.Equal(t, navigation.Idle, c.State())
	assert.Nil(t, c.Current())
	assert.True(t, views.get("about")[0].Disconnected())
	assert.True(t, views.get("home")[0].Disconnected())
}

func TestController_Redirect(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, h, _, _, _ := setup(t, "https://app.test/about")
	require.NoError(t, c.Start(ctx).Await())

	f, err := c.Redirect(ctx, "/")
	require.NoError(t, err)
	require.NoError(t, f.Await())

	assert.Equal(t, 1, h.Len())
	assert.Equal(t, "/", h.Location().Path)
	assert.Equal(t, "home", c.Current().Name())

	_, err = c.Redirect(ctx, "https://elsewhere.test/")
	assert.ErrorIs(t, err, navigation.ErrCrossOrigin)
}

func TestController_BackAndForward(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, h, _, _, _ := setup(t, "https://app.test/")
	require.NoError(t, c.Start(ctx).Await())
	_, err := c.Navigate(ctx, "/about")
	require.NoError(t, err)
	c.Wait()

	require.True(t, h.Back())
	require.NoError(t, c.PopState(ctx, h.State()).Await())
	assert.Equal(t, "home", c.Current().Name())

	require.True(t, h.Forward())
	require.NoError(t, c.PopState(ctx, h.State()).Await())
	assert.Equal(t, "about", c.Current().Name())
	assert.False(t, h.Forward())
}

func TestNew_PanicsOnNilCollaborators(t *testing.T) {
	t.Parallel()

	h, err := navigation.NewMemoryHistory("https://app.test/")
	require.NoError(t, err)
	r := router.New()

	assert.PanicsWithValue(t, navigation.ErrNilDispatcher, func() { navigation.New(nil, h, &mountPoint{}) })
	assert.PanicsWithValue(t, navigation.ErrNilHistory, func() { navigation.New(r, nil, &mountPoint{}) })
	assert.PanicsWithValue(t, navigation.ErrNilMountPoint, func() { navigation.New(r, h, nil) })
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", navigation.Idle.String())
	assert.Equal(t, "loading", navigation.Loading.String())
	assert.Equal(t, "mounted", navigation.Mounted.String())
	assert.Equal(t, "state(9)", navigation.State(9).String())
}
