package postapp

import (
	commentEntity "nodebird/internal/core/comment"
	postEntity "nodebird/internal/core/post"
	userEntity "nodebird/internal/core/user"
	commentPort "nodebird/internal/ports/comment"
	postPort "nodebird/internal/ports/post"
	userPort "nodebird/internal/ports/user"
)

// ToFullPostDTO maps a resolved post. Collections are never nil so they
// encode as [] rather than null.
func ToFullPostDTO(p *postEntity.Post) *postPort.FullPostDTO {
	dto := &postPort.FullPostDTO{
		ID:        p.ID.String(),
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		Author:    toAuthorDTO(&p.User),
		Likers:    make([]postPort.LikerDTO, 0, len(p.Likers)),
		Comments:  make([]*commentPort.CommentDTO, 0, len(p.Comments)),
		Images:    make([]postPort.ImageDTO, 0, len(p.Images)),
		Hashtags:  make([]string, 0, len(p.Hashtags)),
	}
	for _, u := range p.Likers {
		dto.Likers = append(dto.Likers, postPort.LikerDTO{ID: u.ID.String()})
	}
	for i := range p.Comments {
		dto.Comments = append(dto.Comments, ToCommentDTO(&p.Comments[i]))
	}
	for _, img := range p.Images {
		dto.Images = append(dto.Images, postPort.ImageDTO{ID: img.ID.String(), Src: img.Src})
	}
	for _, h := range p.Hashtags {
		dto.Hashtags = append(dto.Hashtags, h.Name)
	}
	return dto
}

func ToCommentDTO(c *commentEntity.Comment) *commentPort.CommentDTO {
	return &commentPort.CommentDTO{
		ID:        c.ID.String(),
		PostID:    c.PostID.String(),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		Author:    toAuthorDTO(&c.User),
	}
}

func toAuthorDTO(u *userEntity.User) userPort.AuthorDTO {
	return userPort.AuthorDTO{ID: u.ID.String(), Nickname: u.Nickname}
}

func toFullPostDTOs(posts []*postEntity.Post) []*postPort.FullPostDTO {
	out := make([]*postPort.FullPostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, ToFullPostDTO(p))
	}
	return out
}
