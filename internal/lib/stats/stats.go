// Package stats computes aggregate figures over an in-memory list of blogs.
//
// Every helper is pure. Ties always go to the entry seen first, so results
// depend on the order of the input slice and nothing else.
package stats

import (
	"github.com/code2244/bloglist/internal/model"
)

// Favorite is the projection of the most liked blog.
type Favorite struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// AuthorBlogs is the author with the most blogs and their blog count.
type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes is the author with the most likes summed over their blogs.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Summary bundles every aggregate. Absent results encode as null.
type Summary struct {
	TotalLikes   int          `json:"totalLikes"`
	FavoriteBlog *Favorite    `json:"favoriteBlog"`
	MostBlogs    *AuthorBlogs `json:"mostBlogs"`
	MostLikes    *AuthorLikes `json:"mostLikes"`
}

// TotalLikes returns the sum of likes; 0 for an empty list.
func TotalLikes(blogs []model.Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the blog with strictly the most likes, or nil for an
// empty list.
func FavoriteBlog(blogs []model.Blog) *Favorite {
	if len(blogs) == 0 {
		return nil
	}

	fav := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes > fav.Likes {
			fav = b
		}
	}

	return &Favorite{
		Title:  fav.Title,
		Author: fav.Author,
		Likes:  fav.Likes,
	}
}

// MostBlogs returns the author who wrote the most blogs, or nil when no
// blog has an author.
func MostBlogs(blogs []model.Blog) *AuthorBlogs {
	author, count, ok := maxByAuthor(blogs, func(model.Blog) int { return 1 })
	if !ok {
		return nil
	}
	return &AuthorBlogs{Author: author, Blogs: count}
}

// MostLikes returns the author whose blogs have the most likes in total, or
// nil when no blog has an author.
func MostLikes(blogs []model.Blog) *AuthorLikes {
	author, likes, ok := maxByAuthor(blogs, func(b model.Blog) int { return b.Likes })
	if !ok {
		return nil
	}
	return &AuthorLikes{Author: author, Likes: likes}
}

// Summarize runs every helper over blogs.
func Summarize(blogs []model.Blog) *Summary {
	return &Summary{
		TotalLikes:   TotalLikes(blogs),
		FavoriteBlog: FavoriteBlog(blogs),
		MostBlogs:    MostBlogs(blogs),
		MostLikes:    MostLikes(blogs),
	}
}

// maxByAuthor groups blogs by author, sums weight per group and returns the
// largest group. Authors are kept in first-seen order and only a strictly
// larger total replaces the current leader. Blogs without an author are
// not grouped.
func maxByAuthor(blogs []model.Blog, weight func(model.Blog) int) (string, int, bool) {
	totals := make(map[string]int, len(blogs))
	order := make([]string, 0, len(blogs))
	for _, b := range blogs {
		if b.Author == "" {
			continue
		}
		if _, seen := totals[b.Author]; !seen {
			order = append(order, b.Author)
		}
		totals[b.Author] += weight(b)
	}

	if len(order) == 0 {
		return "", 0, false
	}

	best := order[0]
	for _, author := range order[1:] {
		if totals[author] > totals[best] {
			best = author
		}
	}

	return best, totals[best], true
}
