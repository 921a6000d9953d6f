package web

import (
	"errors"
	"html/template"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vacmar/portfolio/internal/content"
)

var templateFuncs = template.FuncMap{
	"join":    strings.Join,
	"percent": func(p int) string { return strconv.Itoa(p) + "%" },
}

// index renders the whole page with the visitor's roadmap inline.
func (s *Server) index(c *gin.Context) {
	v := s.visitFor(c)
	rm, err := s.roadmapData(v.view)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"heroTitle": content.HeroTitle,
		"about":     content.AboutMe,
		"profile":   s.profile,
		"roadmap":   rm,
		"welcome":   !s.welcomed(c),
	})
}

// welcomed reports whether the visitor already dismissed the welcome screen
// in this session.
func (s *Server) welcomed(c *gin.Context) bool {
	sess, err := s.sessions.Get(c.Request, sessionName)
	if err != nil {
		return false
	}
	done, _ := sess.Values[sessionWelcome].(bool)
	return done
}

// enter handles POST /welcome. The overlay is swapped out for nothing and
// the page is told to start the background audio.
func (s *Server) enter(c *gin.Context) {
	sess, err := s.sessions.Get(c.Request, sessionName)
	if err != nil {
		s.log.Debug("session cookie rejected; starting a new one", zap.Error(err))
	}
	sess.Values[sessionWelcome] = true
	if err := sess.Save(c.Request, c.Writer); err != nil {
		s.log.Warn("save session", zap.Error(err))
	}
	setTrigger(c, "HX-Trigger", map[string]any{
		eventAudioStart: map[string]any{"volume": 1, "retry": 1000},
	})
	c.Status(http.StatusOK)
}

// resume handles GET /resume.
func (s *Server) resume(c *gin.Context) {
	info, err := os.Stat(s.cfg.ResumePath)
	if err != nil || info.IsDir() {
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("stat resume", zap.String("path", s.cfg.ResumePath), zap.Error(err))
		}
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "The resume is not available right now."})
		return
	}
	s.metrics.Resumes.Inc()
	c.FileAttachment(s.cfg.ResumePath, resumeFilename)
}

// contact handles the HTMX contact form and returns a message fragment.
func (s *Server) contact(c *gin.Context) {
	var msg ContactMessage
	if err := c.ShouldBind(&msg); err != nil {
		s.metrics.Contacts.WithLabelValues("invalid").Inc()
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please fill in your name, a valid email and a message.",
		})
		return
	}

	if err := s.mailer.Send(c.Request.Context(), msg); err != nil {
		s.metrics.Contacts.WithLabelValues("failed").Inc()
		s.log.Warn("contact form", zap.Error(err))
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	s.metrics.Contacts.WithLabelValues("sent").Inc()
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
