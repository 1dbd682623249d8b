package domain

import "strings"

// Category is the label a bookmark is filed under.
type Category string

const (
	CategorySocial Category = "social"
	CategoryBlog   Category = "blog"
	CategoryLearn  Category = "learn"
	CategoryCode   Category = "code"
	CategoryDesign Category = "design"
	CategoryOthers Category = "others"
)

// categoryRule binds a category to the URL fragments that select it.
type categoryRule struct {
	category Category
	keywords []string
}

// categoryRules is ordered: the first rule whose keyword matches wins.
// The final rule matches the empty string so every URL maps to exactly
// one category.
var categoryRules = []categoryRule{
	{CategorySocial, []string{"facebook", "instagram", "x.com", "twitter", "tiktok", "linkedin", "reddit", "discord", "youtube", "whatsapp", "telegram"}},
	{CategoryBlog, []string{"medium", "wordpress", "substack", "tumblr", "ghost", "dev.to"}},
	{CategoryLearn, []string{"wikipedia", "coursera", "udemy", "khanacademy", "edx", "codecademy", "brilliant"}},
	{CategoryCode, []string{"github", "gitlab", "stackoverflow", "codepen", "leetcode", "replit", "codesandbox"}},
	{CategoryDesign, []string{"dribbble", "behance", "figma", "canva", "adobe", "freepik"}},
	{CategoryOthers, []string{""}},
}

// Categories returns the full category set in declared priority order.
// Views render folder buckets in this order, empty buckets included.
func Categories() []Category {
	out := make([]Category, 0, len(categoryRules))
	for _, rule := range categoryRules {
		out = append(out, rule.category)
	}
	return out
}

// Categorize maps a URL to its category by case-insensitive substring
// matching against the rule table. Pure and total: any string input,
// valid URL or not, yields exactly one category.
func Categorize(url string) Category {
	lower := strings.ToLower(url)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.category
			}
		}
	}
	return CategoryOthers
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	for _, rule := range categoryRules {
		if rule.category == c {
			return true
		}
	}
	return false
}
