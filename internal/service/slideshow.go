package service

import "sync"

// Slideshow - карусель с переходом по кругу.
// Её двигают и цикл обновлений, и автопрокрутка, поэтому под мьютексом.
type Slideshow struct {
	mu      sync.Mutex
	slides  []Slide
	current int
}

func NewSlideshow(slides []Slide) *Slideshow {
	return &Slideshow{slides: slides}
}

func (s *Slideshow) Len() int {
	return len(s.slides)
}

func (s *Slideshow) Current() (int, Slide) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.at(s.current)
}

func (s *Slideshow) Next() (int, Slide) {
	return s.step(1)
}

func (s *Slideshow) Prev() (int, Slide) {
	return s.step(-1)
}

func (s *Slideshow) step(delta int) (int, Slide) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.slides)
	if n == 0 {
		return 0, Slide{}
	}
	s.current = (s.current + delta + n) % n
	return s.current, s.slides[s.current]
}

func (s *Slideshow) at(i int) Slide {
	if i < 0 || i >= len(s.slides) {
		return Slide{}
	}
	return s.slides[i]
}
