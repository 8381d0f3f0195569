package store

import "context"

// SetClubUnion records which union a club settles through. An empty unionID
// clears the membership.
func (s *Store) SetClubUnion(ctx context.Context, clubID, unionID string) error {
	if unionID == "" {
		_, err := s.Pool.Exec(ctx, `DELETE FROM club_unions WHERE club_id = $1`, clubID)
		return mapPgError(err)
	}
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO club_unions (club_id, union_id) VALUES ($1, $2)
		ON CONFLICT (club_id) DO UPDATE SET union_id = EXCLUDED.union_id, updated_at = now()
	`, clubID, unionID)
	return mapPgError(err)
}

// GetUnionForClub returns ErrNotFound when the club settles on its own.
func (s *Store) GetUnionForClub(ctx context.Context, clubID string) (string, error) {
	var unionID string
	err := s.Pool.QueryRow(ctx, `SELECT union_id FROM club_unions WHERE club_id = $1`, clubID).Scan(&unionID)
	if err != nil {
		return "", mapPgError(err)
	}
	return unionID, nil
}
