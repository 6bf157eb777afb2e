package video

import (
	"sort"
	"sync"

	"github.com/gofiber/fiber/v2"
)

// VideoService keeps the last good frame of every view for the web surface.
type VideoService struct {
	mu     sync.RWMutex
	frames map[string]Frame
}

// NewVideoService creates a new video service instance
func NewVideoService() *VideoService {
	return &VideoService{
		frames: make(map[string]Frame),
	}
}

// PresentFrame implements Sink. Later frames replace earlier ones.
func (s *VideoService) PresentFrame(f Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames[f.View] = f
}

// Frame returns the last frame of a view.
func (s *VideoService) Frame(view string) (Frame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.frames[view]
	return f, ok
}

// GetActiveStreams returns the views that have produced a frame, sorted.
func (s *VideoService) GetActiveStreams() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]string, 0, len(s.frames))
	for view := range s.frames {
		views = append(views, view)
	}
	sort.Strings(views)
	return views
}

// StreamHandler lists the views with their latest frame metadata
func (s *VideoService) StreamHandler(c *fiber.Ctx) error {
	views := s.GetActiveStreams()
	frames := make([]Frame, 0, len(views))
	for _, view := range views {
		if f, ok := s.Frame(view); ok {
			frames = append(frames, f)
		}
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"frames": frames,
	})
}

// ImageHandler serves the last compressed image of the :view parameter
func (s *VideoService) ImageHandler(c *fiber.Ctx) error {
	view := c.Params("view")
	f, ok := s.Frame(view)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no frame for view " + view,
		})
	}
	c.Set(fiber.HeaderContentType, "image/jpeg")
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(f.Data)
}
