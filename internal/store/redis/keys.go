package redis

// Bookmark records live under per-user namespaced keys, with a per-user
// set holding every ID so a full-collection fetch never leaks across
// owners.
const (
	// KeyPrefixBookmark is the prefix for bookmark record keys
	KeyPrefixBookmark = "markd:bookmark:"
	// KeyPrefixUserSet is the prefix for the per-user set of bookmark IDs
	KeyPrefixUserSet = "markd:user:"
)

// BookmarkKey returns the redis key for a bookmark record
func BookmarkKey(id string) string {
	return KeyPrefixBookmark + id
}

// UserBookmarksKey returns the key of the set holding one user's bookmark IDs
func UserBookmarksKey(userID string) string {
	return KeyPrefixUserSet + userID + ":bookmarks"
}
