package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vacmar/portfolio/internal/content"
	"github.com/vacmar/portfolio/internal/render"
	"github.com/vacmar/portfolio/internal/roadmap"
)

// visitFor returns the caller's roadmap view, mounting one and setting the
// session cookie on first contact. Scroll metrics and the touch hint from
// the request are applied before the handler runs.
func (s *Server) visitFor(c *gin.Context) *visit {
	sess, err := s.sessions.Get(c.Request, sessionName)
	if err != nil {
		s.log.Debug("session cookie rejected; starting a new one", zap.Error(err))
	}
	id, _ := sess.Values[sessionViewKey].(string)

	v := s.views.Acquire(id)
	if v.id != id {
		sess.Values[sessionViewKey] = v.id
		if err := sess.Save(c.Request, c.Writer); err != nil {
			s.log.Warn("save session", zap.Error(err))
		}
	}
	v.doc.report(c.Request)
	v.view.SetTouch(isTouch(c.Request))
	return v
}

// isTouch reports whether labels should always show: the client hints a
// mobile device, or the user agent names one.
func isTouch(r *http.Request) bool {
	if r.Header.Get("Sec-CH-UA-Mobile") == "?1" {
		return true
	}
	ua := strings.ToLower(r.UserAgent())
	for _, hint := range []string{"mobi", "android", "iphone", "ipad", "tablet"} {
		if strings.Contains(ua, hint) {
			return true
		}
	}
	return false
}

type filterTab struct {
	Filter roadmap.Filter
	Label  string
	Count  int
	Active bool
}

type legendItem struct {
	Label string
	Color template.CSS
}

type roadmapData struct {
	Intro  string
	Tabs   []filterTab
	Stats  roadmap.Stats
	Legend []legendItem
	Canvas template.HTML
}

func (s *Server) roadmapData(v *roadmap.View) (roadmapData, error) {
	canvas, err := s.canvas(v)
	if err != nil {
		return roadmapData{}, err
	}

	active := v.Filter()
	tabs := make([]filterTab, 0, len(roadmap.Filters))
	for _, f := range roadmap.Filters {
		tabs = append(tabs, filterTab{
			Filter: f,
			Label:  f.Label(),
			Count:  len(s.store.Filter(f)),
			Active: f == active,
		})
	}

	return roadmapData{
		Intro: content.RoadmapIntro,
		Tabs:  tabs,
		Stats: v.Stats(),
		Legend: []legendItem{
			{roadmap.StatusCompleted.Label(), css(roadmap.StatusColor(roadmap.StatusCompleted))},
			{roadmap.StatusCurrent.Label(), css(roadmap.StatusColor(roadmap.StatusCurrent))},
			{roadmap.StatusPlanned.Label(), css(roadmap.StatusColor(roadmap.StatusPlanned))},
			{"Major Project", css(roadmap.ProjectAccent)},
		},
		Canvas: canvas,
	}, nil
}

// canvas renders the view's current scene as inline SVG with HTMX hooks on
// every node marker.
func (s *Server) canvas(v *roadmap.View) (template.HTML, error) {
	var buf bytes.Buffer
	err := render.WriteSVG(&buf, v.Scene(), render.Options{
		ID:       "roadmap-svg",
		Grid:     true,
		Fragment: true,
		NodeAttrs: func(id int) []string {
			n, _ := s.store.Lookup(id)
			return []string{
				fmt.Sprintf(`hx-get="/roadmap/nodes/%d"`, id),
				`hx-target="#roadmap-modal"`,
				`hx-swap="innerHTML"`,
				`role="button"`,
				`tabindex="0"`,
				fmt.Sprintf(`aria-label="%s"`, html.EscapeString(n.Title)),
			}
		},
	})
	if err != nil {
		return "", fmt.Errorf("render roadmap: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func (s *Server) renderRoadmap(c *gin.Context, status int, v *visit) {
	data, err := s.roadmapData(v.view)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(status, "roadmap.html", data)
}

func (s *Server) renderCanvas(c *gin.Context, v *visit) {
	canvas, err := s.canvas(v.view)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(canvas))
}

// roadmapSection handles GET /roadmap.
func (s *Server) roadmapSection(c *gin.Context) {
	s.renderRoadmap(c, http.StatusOK, s.visitFor(c))
}

// setFilter handles POST /roadmap/filter/:filter. The page scrolls the
// canvas into view once the swap settles.
func (s *Server) setFilter(c *gin.Context) {
	f, err := roadmap.ParseFilter(c.Param("filter"))
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"error": "Unknown roadmap filter."})
		return
	}
	v := s.visitFor(c)
	v.view.SetFilter(f)
	s.metrics.Filters.WithLabelValues(string(f)).Inc()

	setTrigger(c, "HX-Trigger-After-Settle", map[string]any{
		eventRoadmapScroll: map[string]int64{"delay": v.view.ScrollSettle().Milliseconds()},
	})
	s.renderRoadmap(c, http.StatusOK, v)
}

// viewportForm is what the page reports on scroll and resize, in page
// pixels.
type viewportForm struct {
	ScrollX      float64 `form:"scroll_x" binding:"gte=0"`
	ScrollY      float64 `form:"scroll_y" binding:"gte=0"`
	Width        float64 `form:"width" binding:"required,gt=0"`
	Height       float64 `form:"height" binding:"required,gt=0"`
	CanvasLeft   float64 `form:"canvas_left"`
	CanvasTop    float64 `form:"canvas_top"`
	CanvasWidth  float64 `form:"canvas_width" binding:"required,gt=0"`
	CanvasHeight float64 `form:"canvas_height" binding:"required,gt=0"`
}

// viewport handles POST /roadmap/viewport and returns the refreshed canvas.
func (s *Server) viewport(c *gin.Context) {
	var form viewportForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"error": "Invalid viewport."})
		return
	}
	v := s.visitFor(c)
	v.view.Resize(roadmap.Rect{
		Left:   form.CanvasLeft,
		Top:    form.CanvasTop,
		Width:  form.CanvasWidth,
		Height: form.CanvasHeight,
	})
	v.view.Scroll(roadmap.Rect{
		Left:   form.ScrollX,
		Top:    form.ScrollY,
		Width:  form.Width,
		Height: form.Height,
	})
	s.renderCanvas(c, v)
}

// sectionEntered handles POST /roadmap/section, sent when the roadmap
// section scrolls back into view.
func (s *Server) sectionEntered(c *gin.Context) {
	v := s.visitFor(c)
	v.view.SectionEntered()
	s.renderCanvas(c, v)
}

// reveal handles POST /roadmap/reveal with ids reported by a browser
// intersection observer.
func (s *Server) reveal(c *gin.Context) {
	raw := c.PostFormArray("id")
	entries := make([]roadmap.Entry, 0, len(raw))
	for _, r := range raw {
		id, err := strconv.Atoi(r)
		if err != nil {
			c.HTML(http.StatusBadRequest, "error.html", gin.H{"error": "Invalid node id."})
			return
		}
		entries = append(entries, roadmap.Entry{NodeID: id, Intersecting: true, Ratio: 1})
	}
	v := s.visitFor(c)
	v.view.Reveal(entries)
	s.renderCanvas(c, v)
}

// hover handles POST /roadmap/hover/:id; id 0 clears the hover.
func (s *Server) hover(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"error": "Invalid node id."})
		return
	}
	v := s.visitFor(c)
	v.view.Hover(id)
	s.renderCanvas(c, v)
}

type modalData struct {
	Node        roadmap.Node
	StatusColor template.CSS
	Accent      template.CSS
	Progress    int
	Links       []modalLink
}

type modalLink struct {
	ID     int
	Title  string
	Status string
	Color  template.CSS
}

// selectNode handles GET /roadmap/nodes/:id. Opening the modal locks page
// scroll; following a link inside the modal re-targets it.
func (s *Server) selectNode(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"error": "Invalid node id."})
		return
	}
	v := s.visitFor(c)
	if err := v.view.Select(id); err != nil {
		if errors.Is(err, roadmap.ErrUnknownNode) {
			c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "That roadmap item does not exist."})
			return
		}
		s.fail(c, err)
		return
	}

	n, _ := v.view.Selected()
	s.metrics.Selections.WithLabelValues(string(n.Kind)).Inc()

	links := v.view.Links()
	data := modalData{
		Node:        n,
		StatusColor: css(roadmap.StatusColor(n.Status)),
		Accent:      css(roadmap.AccentColor(n)),
		Progress:    n.ProgressPercent(),
		Links:       make([]modalLink, 0, len(links)),
	}
	for _, l := range links {
		data.Links = append(data.Links, modalLink{
			ID:     l.ID,
			Title:  l.Title,
			Status: l.Status.Label(),
			Color:  css(roadmap.StatusColor(l.Status)),
		})
	}

	setTrigger(c, "HX-Trigger", v.doc.drain())
	c.HTML(http.StatusOK, "modal.html", data)
}

// closeModal handles POST /roadmap/close.
func (s *Server) closeModal(c *gin.Context) {
	v := s.visitFor(c)
	v.view.CloseModal()
	setTrigger(c, "HX-Trigger", v.doc.drain())
	c.Status(http.StatusOK)
}

// css marks a palette colour as safe for style attributes.
func css(color string) template.CSS { return template.CSS(color) }

// setTrigger sets an HTMX trigger header carrying events as JSON.
func setTrigger(c *gin.Context, header string, events map[string]any) {
	if len(events) == 0 {
		return
	}
	b, err := json.Marshal(events)
	if err != nil {
		return
	}
	c.Header(header, string(b))
}

func (s *Server) fail(c *gin.Context, err error) {
	s.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{"error": "Something went wrong. Please try again."})
}
