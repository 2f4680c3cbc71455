package stats

import (
	"testing"

	"github.com/code2244/bloglist/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var listWithOneBlog = []model.Blog{
	{
		ID:     "5a422aa71b54a676234d17f8",
		Title:  "Go To Statement Considered Harmful",
		Author: "Edsger W. Dijkstra",
		URL:    "http://www.u.arizona.edu/~rubinson/copyright_violations/Go_To_Considered_Harmful.html",
		Likes:  5,
	},
}

var blogs = []model.Blog{
	{ID: "5a422a851b54a676234d17f7", Title: "React patterns", Author: "Michael Chan", URL: "https://reactpatterns.com/", Likes: 7},
	{ID: "5a422aa71b54a676234d17f8", Title: "Go To Statement Considered Harmful", Author: "Edsger W. Dijkstra", URL: "http://www.u.arizona.edu/~rubinson/copyright_violations/Go_To_Considered_Harmful.html", Likes: 5},
	{ID: "5a422b3a1b54a676234d17f9", Title: "Canonical string reduction", Author: "Edsger W. Dijkstra", URL: "http://www.cs.utexas.edu/~EWD/transcriptions/EWD08xx/EWD808.html", Likes: 12},
	{ID: "5a422b891b54a676234d17fa", Title: "First class tests", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2017/05/05/TestDefinitions.htmll", Likes: 10},
	{ID: "5a422ba71b54a676234d17fb", Title: "TDD harms architecture", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2017/03/03/TDD-Harms-Architecture.html", Likes: 0},
	{ID: "5a422bc61b54a676234d17fc", Title: "Type wars", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2016/05/01/TypeWars.html", Likes: 2},
}

func TestTotalLikes(t *testing.T) {
	t.Run("of empty list is zero", func(t *testing.T) {
		assert.Equal(t, 0, TotalLikes(nil))
		assert.Equal(t, 0, TotalLikes([]model.Blog{}))
	})

	t.Run("when list has only one blog equals the likes of that", func(t *testing.T) {
		assert.Equal(t, 5, TotalLikes(listWithOneBlog))
	})

	t.Run("of a bigger list is calculated right", func(t *testing.T) {
		assert.Equal(t, 36, TotalLikes(blogs))
	})
}

func TestFavoriteBlog(t *testing.T) {
	t.Run("of empty list is nil", func(t *testing.T) {
		assert.Nil(t, FavoriteBlog(nil))
	})

	t.Run("of one blog is that blog", func(t *testing.T) {
		assert.Equal(t, &Favorite{
			Title:  "Go To Statement Considered Harmful",
			Author: "Edsger W. Dijkstra",
			Likes:  5,
		}, FavoriteBlog(listWithOneBlog))
	})

	t.Run("of a bigger list has the most likes", func(t *testing.T) {
		assert.Equal(t, &Favorite{
			Title:  "Canonical string reduction",
			Author: "Edsger W. Dijkstra",
			Likes:  12,
		}, FavoriteBlog(blogs))
	})

	t.Run("ties go to the first seen", func(t *testing.T) {
		tied := []model.Blog{
			{Title: "first", Author: "a", Likes: 3},
			{Title: "second", Author: "b", Likes: 3},
		}
		fav := FavoriteBlog(tied)
		require.NotNil(t, fav)
		assert.Equal(t, "first", fav.Title)
	})

	t.Run("all zero likes still yields a result", func(t *testing.T) {
		fav := FavoriteBlog([]model.Blog{{Title: "only", Likes: 0}})
		require.NotNil(t, fav)
		assert.Equal(t, "only", fav.Title)
	})
}

func TestMostBlogs(t *testing.T) {
	t.Run("of empty list is nil", func(t *testing.T) {
		assert.Nil(t, MostBlogs([]model.Blog{}))
	})

	t.Run("of one blog is its author", func(t *testing.T) {
		assert.Equal(t, &AuthorBlogs{Author: "Edsger W. Dijkstra", Blogs: 1}, MostBlogs(listWithOneBlog))
	})

	t.Run("of a bigger list is the most prolific author", func(t *testing.T) {
		assert.Equal(t, &AuthorBlogs{Author: "Robert C. Martin", Blogs: 3}, MostBlogs(blogs))
	})

	t.Run("ties go to the author seen first", func(t *testing.T) {
		tied := []model.Blog{
			{Author: "b"}, {Author: "a"}, {Author: "a"}, {Author: "b"},
		}
		assert.Equal(t, &AuthorBlogs{Author: "b", Blogs: 2}, MostBlogs(tied))
	})

	t.Run("skips blogs without an author", func(t *testing.T) {
		mixed := []model.Blog{{Title: "x"}, {Title: "y"}, {Title: "z"}, {Title: "w", Author: "a"}}
		assert.Equal(t, &AuthorBlogs{Author: "a", Blogs: 1}, MostBlogs(mixed))
		assert.Nil(t, MostBlogs(mixed[:3]))
	})
}

func TestMostLikes(t *testing.T) {
	t.Run("of empty list is nil", func(t *testing.T) {
		assert.Nil(t, MostLikes(nil))
	})

	t.Run("of one blog is its author", func(t *testing.T) {
		assert.Equal(t, &AuthorLikes{Author: "Edsger W. Dijkstra", Likes: 5}, MostLikes(listWithOneBlog))
	})

	t.Run("of a bigger list is the most liked author", func(t *testing.T) {
		assert.Equal(t, &AuthorLikes{Author: "Edsger W. Dijkstra", Likes: 17}, MostLikes(blogs))
	})

	t.Run("ties go to the author seen first", func(t *testing.T) {
		tied := []model.Blog{
			{Author: "z", Likes: 4}, {Author: "y", Likes: 1}, {Author: "y", Likes: 3},
		}
		assert.Equal(t, &AuthorLikes{Author: "z", Likes: 4}, MostLikes(tied))
	})

	t.Run("skips blogs without an author", func(t *testing.T) {
		mixed := []model.Blog{{Likes: 50}, {Author: "a", Likes: 2}}
		assert.Equal(t, &AuthorLikes{Author: "a", Likes: 2}, MostLikes(mixed))
		assert.Nil(t, MostLikes(mixed[:1]))
	})
}

func TestSummarize(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		s := Summarize(nil)
		assert.Equal(t, &Summary{}, s)
	})

	t.Run("bigger list", func(t *testing.T) {
		s := Summarize(blogs)
		assert.Equal(t, 36, s.TotalLikes)
		assert.Equal(t, "Canonical string reduction", s.FavoriteBlog.Title)
		assert.Equal(t, "Robert C. Martin", s.MostBlogs.Author)
		assert.Equal(t, "Edsger W. Dijkstra", s.MostLikes.Author)
	})
}
