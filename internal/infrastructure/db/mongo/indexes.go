package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates every index the repositories rely on. It is run once
// at startup, before the server accepts traffic.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	targets := []struct {
		name   string
		ensure func(context.Context) error
	}{
		{collectionUsers, NewUserRepository(db).EnsureIndexes},
		{collectionRoles, NewRoleRepository(db).EnsureIndexes},
		{collectionStudents, NewStudentRepository(db).EnsureIndexes},
		{collectionTeachers, NewTeacherRepository(db).EnsureIndexes},
		{collectionCourses, NewCourseRepository(db).EnsureIndexes},
		{collectionEnrollments, NewEnrollmentRepository(db).EnsureIndexes},
		{collectionAbsences, NewAbsenceRepository(db).EnsureIndexes},
		{collectionSettings, NewSettingRepository(db).EnsureIndexes},
		{collectionAuditLog, NewAuditRepository(db).EnsureIndexes},
	}

	for _, t := range targets {
		if err := t.ensure(ctx); err != nil {
			return fmt.Errorf("ensure indexes for %s: %w", t.name, err)
		}
	}
	return nil
}
