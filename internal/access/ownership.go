package access

import "blog-service/internal/model"

// AssignOwner makes principal the owner of post, discarding whatever owner the
// post carried before. Only the create pipeline calls it.
func AssignOwner(post *model.Post, principal model.Principal) {
	post.OwnerID = principal.UserID
	post.Owner = nil
}
