package database

import "github.com/thereayou/minitweet/internal/services"

var (
	_ services.UserStore = (*Database)(nil)
	_ services.PostStore = (*Database)(nil)
)
