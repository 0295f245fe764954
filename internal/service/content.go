package service

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Content - всё статичное содержимое открытки, кроме вопросов
type Content struct {
	Hero    Hero     `yaml:"hero"`
	Reasons []Reason `yaml:"reasons"`
	Slides  []Slide  `yaml:"slides"`
	Videos  []Video  `yaml:"videos"`
	Letter  Letter   `yaml:"letter"`
	Bouquet Bouquet  `yaml:"bouquet"`
	Final   Final    `yaml:"final"`
	Footer  Footer   `yaml:"footer"`
	Music   Music    `yaml:"music"`
}

type Hero struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Tagline  string `yaml:"tagline"`
}

type Reason struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type Slide struct {
	Image   string `yaml:"image"`
	Caption string `yaml:"caption"`
}

type Video struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
}

type Letter struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Text     string `yaml:"text"`
}

type Bouquet struct {
	Image   string `yaml:"image"`
	Caption string `yaml:"caption"`
}

type Final struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

type Footer struct {
	Line      string `yaml:"line"`
	Signature string `yaml:"signature"`
}

type Music struct {
	File      string `yaml:"file"`
	Title     string `yaml:"title"`
	Performer string `yaml:"performer"`
}

// LoadContent читает YAML поверх DefaultContent.
// Нет файла - дефолты, битый файл - ошибка.
func LoadContent(path string) (*Content, error) {
	c := DefaultContent()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Content) Validate() error {
	for i, s := range c.Slides {
		if s.Image == "" {
			return fmt.Errorf("slide %d: image is required", i+1)
		}
	}
	for i, v := range c.Videos {
		if v.URL == "" {
			return fmt.Errorf("video %d: url is required", i+1)
		}
	}
	return nil
}

func DefaultContent() *Content {
	return &Content{
		Hero: Hero{
			Title:    "Happy Valentine's Day",
			Subtitle: "My Beautiful Loveeeee ❤️",
			Tagline:  "Today is all about celebrating you and everything you mean to me 💕",
		},
		Reasons: []Reason{
			{"Your Beautiful Smile", "The way your whole face lights up when you're truly happy - it's the most beautiful thing I've ever seen"},
			{"Your Kind Heart", "You care so deeply about everyone around you. Your compassion makes the world a better place"},
			{"Your Laugh", "That genuine, contagious laugh that makes me want to be funnier just to hear it more often"},
			{"How You Listen", "You don't just hear me - you really listen, understand, and remember the little things I say"},
			{"Your Authenticity", "You're unapologetically yourself, and that courage is something I deeply admire"},
			{"You Choose Me", "Every day you choose to love me, and that's the greatest gift I could ever receive"},
		},
		Slides: []Slide{
			{"media/TBabe1.jpeg", "Beautiful you 💕"},
			{"media/TBabe2.jpeg", "My sunshine ☀️"},
			{"media/TBabe3.jpeg", "Forever grateful 🌸"},
			{"media/TBabe4.jpeg", "Perfect moments ✨"},
			{"media/TBabe5.jpeg", "Perfect moments ✨"},
		},
		Videos: []Video{
			{"Our First Date", "media/TBabeVideo1.mp4"},
			{"Random Tuesday Giggles", "media/TBabeVideo2.mp4"},
			{"Our First Walk Together", "media/TBabeVideo3.mp4"},
			{"Our First Dance", "media/TBabeVideo4.mp4"},
			{"Our First Movie Night", "media/TBabeVideo5.mp4"},
			{"Making Breakfast Together", "media/TBabeVideo6.mp4"},
			{"Sunset Stroll", "media/TBabeVideo7.mp4"},
			{"Lazy Sunday Cuddles", "media/TBabeVideo8.mp4"},
			{"Our Adventure", "media/TBabeVideo9.mp4"},
			{"Just Us", "media/TBabeVideo10.mp4"},
		},
		Letter: Letter{
			Title:    "A Letter to You",
			Subtitle: "From my heart to yours",
			Text:     defaultLetter,
		},
		Bouquet: Bouquet{
			Image:   "media/bouquet.mp4",
			Caption: "Flowers For You 💐",
		},
		Final: Final{
			Title: "I Love You",
			Text:  "More than words can say, more than gestures can show.\nYou are my everything, today and always.",
		},
		Footer: Footer{
			Line:      "Happy Valentine's Day, My Love 💕",
			Signature: "Forever Yours • Always & Forever",
		},
		Music: Music{
			File:      "media/golden-hour.mp3",
			Title:     "golden hour (instrumental)",
			Performer: "JVKE",
		},
	}
}

const defaultLetter = `My Beautiful Loveeeee,

I don't think words can truly capture everything you mean to me, but I want to try.

You are my favorite person, my best friend, my safe place. Every day with you is a gift - every laugh we share, every conversation, every quiet moment together.

I love you for so many reasons: your kindness, your strength, your beautiful soul. But more than anything, I love you for being authentically, unapologetically YOU.

You make me want to be better. You believe in me even when I don't believe in myself, and that faith pushes me to reach higher.

Thank you for choosing me. Thank you for being patient with me, for making me laugh, for being exactly who you are.

I promise to keep making you smile, to support your dreams, and to love you through every season. You are my today and all of my tomorrows.

Forever and always yours,
Thierry ❤️`
