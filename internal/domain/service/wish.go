package service

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"birthdayreminder/internal/apperr"
	"birthdayreminder/internal/domain"
	"birthdayreminder/internal/domain/contract"
)

const maxWishCount = 10

// ToneOption describes one selectable wish tone.
type ToneOption struct {
	Value       string
	Label       string
	Description string
}

var wishTones = []ToneOption{
	{Value: "heartfelt", Label: "Heartfelt", Description: "Warm and emotional messages"},
	{Value: "funny", Label: "Funny", Description: "Light-hearted and humorous"},
	{Value: "inspirational", Label: "Inspirational", Description: "Motivating and uplifting"},
	{Value: "formal", Label: "Formal", Description: "Professional and respectful"},
}

// wishService generates birthday wish suggestions from a built-in template
// set, personalized with the friend's name, age and category. No external
// text generation is involved.
type wishService struct {
	dm  contract.DataManager
	log zerolog.Logger
}

func newWish(dm contract.DataManager, logger zerolog.Logger) *wishService {
	return &wishService{
		dm:  dm,
		log: logger.With().Str("component", "wish").Logger(),
	}
}

// Tones returns the selectable tone filters in display order.
func (s *wishService) Tones() []ToneOption {
	return wishTones
}

// Suggest returns up to count personalized wish suggestions for one of the
// user's birthdays. tone narrows the template pool to that tone plus the
// neutral ones; an empty tone mixes everything. Fewer than count wishes come
// back when the filtered pool runs out of distinct templates.
func (s *wishService) Suggest(birthdayID, userID int64, count int, tone string, ref time.Time) ([]string, error) {
	if count < 1 {
		count = 1
	}
	if count > maxWishCount {
		count = maxWishCount
	}

	birthday, err := s.dm.Birthday().GetByIDAndUser(birthdayID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get birthday: %w", err)
	}
	if birthday == nil {
		return nil, apperr.NotFound("birthday", birthdayID)
	}

	// The category name steers template selection; a broken or missing
	// category just means no category-specific templates.
	category := "friend"
	if birthday.CategoryID != nil {
		if c, err := s.dm.Category().GetByIDAndUser(*birthday.CategoryID, userID); err == nil && c != nil {
			category = c.Name
		}
	}

	templates := wishTemplatesFor(category, tone)
	rand.Shuffle(len(templates), func(i, j int) {
		templates[i], templates[j] = templates[j], templates[i]
	})

	firstName := birthday.FriendName
	if fields := strings.Fields(birthday.FriendName); len(fields) > 0 {
		firstName = fields[0]
	}
	age := domain.CurrentAge(birthday.BirthDate, ref) + 1

	wishes := make([]string, 0, count)
	seen := make(map[string]struct{}, count)
	for _, tmpl := range templates {
		if len(wishes) >= count {
			break
		}
		if _, ok := seen[tmpl.text]; ok {
			continue
		}
		seen[tmpl.text] = struct{}{}
		wishes = append(wishes, personalizeWish(tmpl, firstName, birthday.FriendName, age, category))
	}

	s.log.Debug().
		Int64("birthday_id", birthdayID).
		Str("tone", tone).
		Int("count", len(wishes)).
		Msg("wish suggestions generated")
	return wishes, nil
}

func personalizeWish(tmpl wishTemplate, firstName, fullName string, age int, category string) string {
	return strings.NewReplacer(
		"{name}", firstName,
		"{fullName}", fullName,
		"{age}", strconv.Itoa(age),
		"{ordinal}", ordinal(age),
		"{relation}", relationWord(category),
	).Replace(tmpl.text)
}

// ordinal renders 1st, 2nd, 3rd, 4th and keeps the teens on "th".
func ordinal(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return strconv.Itoa(n) + "th"
	}
	switch n % 10 {
	case 1:
		return strconv.Itoa(n) + "st"
	case 2:
		return strconv.Itoa(n) + "nd"
	case 3:
		return strconv.Itoa(n) + "rd"
	default:
		return strconv.Itoa(n) + "th"
	}
}

func relationWord(category string) string {
	switch strings.ToLower(category) {
	case "family":
		return "family member"
	case "work":
		return "colleague"
	default:
		return "friend"
	}
}

// wishTemplate pairs a message with its tone.
type wishTemplate struct {
	text string
	tone string
}

// wishTemplatesFor returns the universal pool plus the category-specific one,
// filtered down to the requested tone and the neutral templates.
func wishTemplatesFor(category, tone string) []wishTemplate {
	pool := make([]wishTemplate, 0, len(universalWishTemplates))
	pool = append(pool, universalWishTemplates...)
	pool = append(pool, categoryWishTemplates[strings.ToLower(category)]...)

	if tone == "" {
		return pool
	}

	tone = strings.ToLower(tone)
	filtered := pool[:0]
	for _, t := range pool {
		if t.tone == tone || t.tone == "neutral" {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

var universalWishTemplates = []wishTemplate{
	// Heartfelt
	{"Happy {ordinal} birthday, {name}! May this year bring you endless joy, beautiful moments, and all the happiness you deserve. 🎂✨", "heartfelt"},
	{"Wishing you the happiest of birthdays, {name}! You're such an amazing person, and I hope your {ordinal} year is filled with love and laughter. 💕", "heartfelt"},
	{"{name}, happy birthday! Another year of you being awesome! May all your dreams come true this year. 🌟", "heartfelt"},
	{"Happy birthday to someone who makes the world a brighter place just by being in it! Have an amazing {ordinal} birthday, {name}! 🎈", "heartfelt"},
	{"To a truly wonderful person - happy {ordinal} birthday, {name}! Wishing you a day filled with love, laughter, and cake! 🎂", "heartfelt"},

	// Funny
	{"Happy {ordinal} birthday, {name}! Don't worry about getting older - you're like a fine wine, getting better with age! 🍷😄", "funny"},
	{"{name}, you're not {age}, you're just {age} years young with a lot of experience! Happy birthday! 🎉😂", "funny"},
	{"Happy birthday, {name}! At {age}, you've officially unlocked the 'distinguished' achievement! Level up! 🎮🎂", "funny"},
	{"Congrats on surviving another trip around the sun, {name}! {age} looks great on you! 🌞🎈", "funny"},
	{"Happy {ordinal} birthday! Remember, age is just a number... a really big, scary number! Just kidding, {name}! 😜🎂", "funny"},
	{"{name}, they say with age comes wisdom. So you must be REALLY wise by now! Happy {ordinal}! 🦉😄", "funny"},

	// Inspirational
	{"Happy {ordinal} birthday, {name}! May this new chapter bring you courage to chase your dreams and strength to achieve them all! 💪✨", "inspirational"},
	{"{name}, happy birthday! Your {ordinal} year is a blank canvas - paint it with bold colors and beautiful adventures! 🎨🌈", "inspirational"},
	{"Happy birthday, {name}! At {age}, you're just getting started. The best is yet to come! 🚀⭐", "inspirational"},
	{"Wishing you a birthday filled with new opportunities and exciting possibilities, {name}! Make your {ordinal} year legendary! 🌟", "inspirational"},
	{"{name}, happy {ordinal} birthday! Remember: every day is a chance to write a new story. Make yours epic! 📖✨", "inspirational"},

	// Formal
	{"Wishing you a very happy {ordinal} birthday, {name}. May this year bring you success and fulfillment in all your endeavors. 🎂", "formal"},
	{"Happy birthday, {name}! Wishing you a wonderful {ordinal} year filled with achievements and happiness. 🎈", "formal"},
	{"On your special day, {name}, I wish you a happy {ordinal} birthday and a year of continued success. Best wishes! 🌟", "formal"},

	// Neutral, kept under every tone filter
	{"Happy {ordinal} birthday, {name}! 🎂🎉", "neutral"},
	{"Wishing you an amazing birthday, {name}! Enjoy your special day! 🎈✨", "neutral"},
	{"Happy birthday, {name}! Hope your {ordinal} is absolutely wonderful! 🎂💫", "neutral"},
}

var categoryWishTemplates = map[string][]wishTemplate{
	"family": {
		{"Happy {ordinal} birthday to the most amazing {name}! Our family is blessed to have you. Love you always! 💕👨‍👩‍👧‍👦", "heartfelt"},
		{"{name}, watching you turn {age} fills my heart with so much pride and love. Happy birthday to my favorite person! 🥰", "heartfelt"},
		{"To my dear {name} on your {ordinal} birthday - you mean the world to our family! Here's to many more years of memories together! 💝", "heartfelt"},
		{"Happy birthday, {name}! {age} years of being the best! Family gatherings wouldn't be the same without you! 🏠❤️", "heartfelt"},
		{"{name}, happy {ordinal} birthday! Thank you for all the love and support you give our family. You're truly one of a kind! 🌟", "heartfelt"},
		{"Happy birthday! At {age}, {name}, you're still the person I look up to most. Thanks for being such an amazing family member! 💪❤️", "inspirational"},
	},
	"friends": {
		{"Happy {ordinal} birthday to my partner in crime, {name}! Here's to many more adventures, late-night talks, and unforgettable memories! 🎊🤝", "heartfelt"},
		{"{name}! Can you believe you're {age}?! You still act like you're 21 and I love that about you! Happy birthday, bestie! 😄🎉", "funny"},
		{"To {name}, the friend who's been there through thick and thin - happy {ordinal} birthday! You're irreplaceable and I'm lucky to have you! 🤗💕", "heartfelt"},
		{"Happy birthday, {name}! After all these years, you're still the friend who makes me laugh the hardest. Here's to {age} and beyond! 😂🎂", "funny"},
		{"{name}, happy {ordinal}! Friends like you are rare gems. Thanks for being amazing! Now let's celebrate! 🎈💎", "heartfelt"},
		{"Happy birthday to my favorite human! {name}, you're officially {age} years of pure awesomeness! 🌟🎉", "funny"},
		{"To my ride-or-die {name} - happy {ordinal} birthday! Life is better with you in it! Let's make this year unforgettable! 🚀💫", "inspirational"},
	},
	"work": {
		{"Happy {ordinal} birthday, {name}! Working with you is always a pleasure. Wishing you success and happiness in the year ahead! 💼🎂", "formal"},
		{"{name}, happy birthday! You bring so much positive energy to the team. May your {ordinal} year be as brilliant as you are! 🌟", "heartfelt"},
		{"Happy birthday to a fantastic colleague! {name}, hope your {ordinal} is amazing. The office is lucky to have you! 🎈", "formal"},
		{"Wishing you a wonderful {ordinal} birthday, {name}! Here's to another year of achievements and growth. You're a rockstar! 🚀", "inspirational"},
		{"Happy birthday, {name}! At {age}, you've got the experience AND the energy. A winning combo! Have a great day! 💪🎉", "funny"},
		{"{name}, happy {ordinal}! Thanks for being such a great colleague. Enjoy your special day - you've earned it! 🏆", "formal"},
	},
	"college": {
		{"Happy {ordinal} birthday, {name}! From late-night study sessions to graduation day - so glad we're still friends! 📚🎉", "heartfelt"},
		{"{name}, turning {age} looks amazing on you! Remember when we thought finals were the hardest thing ever? Happy birthday! 🎓😄", "funny"},
		{"To my college buddy {name} - happy {ordinal}! Those were the days, and you're still one of my favorite people! Cheers! 🍻", "heartfelt"},
		{"Happy birthday, {name}! From dorm life to real life, you've always been awesome. Here's to {age}! 🏠🎂", "heartfelt"},
		{"{name}! {age} years old and still cooler than our professors! Happy birthday to my favorite college memory! 😎🎈", "funny"},
		{"Happy {ordinal} birthday! {name}, our college adventures were legendary, and so are you! Here's to many more! 🌟", "inspirational"},
	},
}
