package store

const (
	createUser = `INSERT INTO users (login, password_hash, name, is_admin)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, login, password_hash, name, is_admin, created_at;`

	findUserByLogin = `SELECT user_id, login, password_hash, name, is_admin, created_at
    FROM users
    WHERE login = $1;`

	findUserByID = `SELECT user_id, login, password_hash, name, is_admin, created_at
    FROM users
    WHERE user_id = $1;`

	createRecord = `INSERT INTO records (owner_id, group_id, type, title, content, is_encrypted, is_locked, lock_passcode_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING record_id, created_at, updated_at;`

	getRecord = `SELECT record_id, owner_id, group_id, type, title, content, is_encrypted, is_locked, lock_passcode_hash, created_at, updated_at
		FROM records
		WHERE record_id = $1;`

	getRecordShares = `SELECT user_id, permission
		FROM record_shares
		WHERE record_id = $1
		ORDER BY user_id;`

	updateRecord = `UPDATE records
		SET group_id = $2,
			title = $3,
			content = $4,
			is_encrypted = $5,
			is_locked = $6,
			lock_passcode_hash = $7,
			updated_at = $8
		WHERE record_id = $1;`

	deleteRecord = `DELETE FROM records WHERE record_id = $1;`

	upsertShare = `INSERT INTO record_shares (record_id, user_id, permission)
		VALUES ($1, $2, $3)
		ON CONFLICT (record_id, user_id) DO UPDATE SET permission = excluded.permission;`

	deleteShare = `DELETE FROM record_shares WHERE record_id = $1 AND user_id = $2;`

	createGroup = `INSERT INTO groups (name, owner_id)
		VALUES ($1, $2)
		RETURNING group_id, created_at;`

	getGroup = `SELECT group_id, name, owner_id, created_at
		FROM groups
		WHERE group_id = $1;`

	getGroupMembers = `SELECT user_id, role
		FROM group_members
		WHERE group_id = $1
		ORDER BY user_id;`

	renameGroup = `UPDATE groups SET name = $2 WHERE group_id = $1;`

	deleteGroup = `DELETE FROM groups WHERE group_id = $1;`

	upsertGroupMember = `INSERT INTO group_members (group_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (group_id, user_id) DO UPDATE SET role = excluded.role;`

	deleteGroupMember = `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2;`

	getAttemptState = `SELECT record_id, scope_key, failed_count, locked_until
		FROM attempt_states
		WHERE record_id = $1 AND scope_key = $2;`

	// casInsertAttemptState covers the expected-count-zero case: either no
	// row exists yet, or a row exists whose counter is still zero. The
	// conditional DO UPDATE makes the write a no-op (zero rows affected)
	// when a concurrent attempt already advanced the counter.
	casInsertAttemptState = `INSERT INTO attempt_states (record_id, scope_key, failed_count, locked_until, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (record_id, scope_key) DO UPDATE
		SET failed_count = excluded.failed_count,
			locked_until = excluded.locked_until,
			updated_at = excluded.updated_at
		WHERE attempt_states.failed_count = 0;`

	casUpdateAttemptState = `UPDATE attempt_states
		SET failed_count = $3, locked_until = $4, updated_at = $5
		WHERE record_id = $1 AND scope_key = $2 AND failed_count = $6;`

	resetAttemptState = `DELETE FROM attempt_states WHERE record_id = $1 AND scope_key = $2;`

	clearRecordAttempts = `DELETE FROM attempt_states WHERE record_id = $1;`

	deleteExpiredAttempts = `DELETE FROM attempt_states
		WHERE locked_until IS NOT NULL AND locked_until < $1;`
)
