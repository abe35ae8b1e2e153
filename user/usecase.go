package user

import "context"

type Service interface {
	CurrentUser(ctx context.Context) (User, error)
}

type Repository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	CreateUser(ctx context.Context, u User) (User, error)
	UpdateProfile(ctx context.Context, id, name, avatarURL string) (User, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

// CurrentUser reloads the user carried by ctx so that profile changes made
// by the identity provider since sign-in are visible.
func (uc *Usecase) CurrentUser(ctx context.Context) (User, error) {
	u, ok := FromContext(ctx)
	if !ok {
		return User{}, ErrNotLoggedIn
	}
	return uc.r.GetByID(ctx, u.ID)
}
