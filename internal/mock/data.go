package mock

// SeedUser デモユーザー
type SeedUser struct {
	Username string
	Email    string
	Password string
	Bio      string
	Image    string
}

// SeedArticle デモ記事（Authorはユーザー名）
type SeedArticle struct {
	Author      string
	Title       string
	Description string
	Body        string
	TagList     []string
	FavoritedBy []string
}

// SeedFollow デモのフォロー関係
type SeedFollow struct {
	Follower  string
	Following string
}

// モックユーザー（パスワードは全員 "password"）
var Users = []SeedUser{
	{
		Username: "johndoe",
		Email:    "john@example.com",
		Password: "password",
		Bio:      "Backend engineer writing about Go and databases",
		Image:    "https://api.realworld.io/images/smiley-cyrus.jpeg",
	},
	{
		Username: "janesmith",
		Email:    "jane@example.com",
		Password: "password",
		Bio:      "Frontend developer and occasional dragon trainer",
		Image:    "https://api.realworld.io/images/demo-avatar.png",
	},
	{
		Username: "bobtanaka",
		Email:    "bob@example.com",
		Password: "password",
	},
}

// モックタグ
var Tags = []string{"go", "gorm", "gin", "dragons", "training", "welcome"}

// モック記事
var Articles = []SeedArticle{
	{
		Author:      "johndoe",
		Title:       "Welcome to Medium clone",
		Description: "What this demo instance contains",
		Body:        "This instance is seeded with a few users, tags and articles so the API can be explored right away.",
		TagList:     []string{"welcome"},
		FavoritedBy: []string{"janesmith", "bobtanaka"},
	},
	{
		Author:      "johndoe",
		Title:       "Transactions in GORM",
		Description: "Keeping counters and relations consistent",
		Body:        "Use db.Transaction to group the relation insert and the counter update so they commit together.",
		TagList:     []string{"go", "gorm"},
		FavoritedBy: []string{"janesmith"},
	},
	{
		Author:      "janesmith",
		Title:       "How to train your dragon",
		Description: "Ever wonder how?",
		Body:        "You have to believe.",
		TagList:     []string{"dragons", "training"},
	},
	{
		Author:      "bobtanaka",
		Title:       "Routing with Gin",
		Description: "Groups, middlewares and params",
		Body:        "Static segments and params can share a prefix, so /articles/feed and /articles/:slug coexist.",
		TagList:     []string{"go", "gin"},
		FavoritedBy: []string{"johndoe"},
	},
}

// モックフォロー
var Follows = []SeedFollow{
	{Follower: "janesmith", Following: "johndoe"},
	{Follower: "bobtanaka", Following: "johndoe"},
	{Follower: "johndoe", Following: "janesmith"},
}
