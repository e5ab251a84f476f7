package group

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberAlreadyExists = errors.New("user is already a member of this group")
	ErrInviteNotFound      = errors.New("invite code not found")
	ErrNotGroupMember      = errors.New("user is not a member of this group")
)

// Service handles group business logic
type Service struct {
	repo   *Repository
	logger *slog.Logger
}

// NewService creates a new group service
func NewService(repo *Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create creates a new group with the creator as a joined admin
func (s *Service) Create(ctx context.Context, creatorID int64, req *CreateGroupRequest) (*Group, error) {
	group, err := s.repo.Create(ctx, creatorID, req)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("group created",
		slog.Int64("group_id", group.ID),
		slog.Int64("creator_id", creatorID),
	)

	return group, nil
}

// GetByID retrieves a group by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Group, error) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

// GetByIDWithMembers retrieves a group with all its members
func (s *Service) GetByIDWithMembers(ctx context.Context, id int64) (*Group, []*GroupMember, error) {
	group, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	members, err := s.repo.GetMembers(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return group, members, nil
}

// ListByUserID retrieves all groups for a user
func (s *Service) ListByUserID(ctx context.Context, userID int64, page, perPage int) ([]*Group, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByUserID(ctx, userID, perPage, offset)
}

// Update modifies an existing group
func (s *Service) Update(ctx context.Context, id int64, req *UpdateGroupRequest) (*Group, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrGroupNotFound
	}

	return s.repo.Update(ctx, id, req)
}

// Delete removes a group
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// AddMember invites a user to a group
func (s *Service) AddMember(ctx context.Context, groupID int64, req *AddMemberRequest) (*GroupMember, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	existing, err := s.repo.GetMember(ctx, groupID, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMemberAlreadyExists
	}

	return s.repo.AddMember(ctx, groupID, req.UserID, req.Role, MemberStatusInvited)
}

// GetMembers retrieves all members of a group
func (s *Service) GetMembers(ctx context.Context, groupID int64) ([]*GroupMember, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	return s.repo.GetMembers(ctx, groupID)
}

// UpdateMember updates a member's status or role
func (s *Service) UpdateMember(ctx context.Context, groupID, userID int64, req *UpdateMemberRequest) (*GroupMember, error) {
	member, err := s.repo.UpdateMember(ctx, groupID, userID, req)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

// RemoveMember removes a user from a group
func (s *Service) RemoveMember(ctx context.Context, groupID, userID int64) error {
	return s.repo.RemoveMember(ctx, groupID, userID)
}

// AcceptInvitation allows a user to accept their group invitation
func (s *Service) AcceptInvitation(ctx context.Context, groupID, userID int64) (*GroupMember, error) {
	member, err := s.repo.GetMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	if member.Status != MemberStatusInvited {
		return member, nil // Already joined
	}

	return s.repo.UpdateMember(ctx, groupID, userID, &UpdateMemberRequest{
		Status: statusPtr(MemberStatusJoined),
	})
}

// GenerateInvite returns the group's shareable invite code, creating
// one if the group has none yet. Only joined members may generate.
func (s *Service) GenerateInvite(ctx context.Context, groupID, userID int64) (*GroupInvite, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	member, err := s.repo.GetMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil || member.Status != MemberStatusJoined {
		return nil, ErrNotGroupMember
	}

	existing, err := s.repo.GetInviteByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	invite, err := s.repo.CreateInvite(ctx, groupID, uuid.NewString(), userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("invite code created",
		slog.Int64("group_id", groupID),
		slog.Int64("created_by", userID),
	)

	return invite, nil
}

// JoinByCode adds the user to the group behind an invite code. A user
// with a pending invitation is marked joined instead of re-added.
func (s *Service) JoinByCode(ctx context.Context, userID int64, code string) (*Group, *GroupMember, error) {
	invite, err := s.repo.GetInviteByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	if invite == nil {
		return nil, nil, ErrInviteNotFound
	}

	group, err := s.repo.GetByID(ctx, invite.GroupID)
	if err != nil {
		return nil, nil, err
	}
	if group == nil {
		return nil, nil, ErrGroupNotFound
	}

	existing, err := s.repo.GetMember(ctx, invite.GroupID, userID)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		if existing.Status == MemberStatusJoined {
			return nil, nil, ErrMemberAlreadyExists
		}
		member, err := s.repo.UpdateMember(ctx, invite.GroupID, userID, &UpdateMemberRequest{
			Status: statusPtr(MemberStatusJoined),
		})
		if err != nil {
			return nil, nil, err
		}
		return group, member, nil
	}

	member, err := s.repo.AddMember(ctx, invite.GroupID, userID, MemberRoleMember, MemberStatusJoined)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user joined group via invite",
		slog.Int64("group_id", invite.GroupID),
		slog.Int64("user_id", userID),
	)

	return group, member, nil
}

// Helper function to get a pointer to a MemberStatus
func statusPtr(s MemberStatus) *MemberStatus {
	return &s
}
