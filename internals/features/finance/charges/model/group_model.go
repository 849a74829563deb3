// file: internals/features/finance/charges/model/group_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GroupModel: grup belajar dengan harga SPP bulanan. CRUD lengkap grup ada di
// layanan akademik; settlement engine hanya butuh harga, mentor, dan status.
type GroupModel struct {
	GroupID       uuid.UUID       `gorm:"column:group_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"group_id"`
	GroupSchoolID uuid.UUID       `gorm:"column:group_school_id;type:uuid;not null;index" json:"group_school_id"`
	GroupName     string          `gorm:"column:group_name;type:varchar(120);not null" json:"group_name"`
	GroupMentorID *uuid.UUID      `gorm:"column:group_mentor_id;type:uuid;index" json:"group_mentor_id,omitempty"`
	GroupPrice    decimal.Decimal `gorm:"column:group_price;type:numeric(18,2);not null;check:group_price>=0" json:"group_price"`
	GroupIsActive bool            `gorm:"column:group_is_active;not null;default:true;index" json:"group_is_active"`

	GroupCreatedAt time.Time      `gorm:"column:group_created_at;not null;default:now()" json:"group_created_at"`
	GroupUpdatedAt time.Time      `gorm:"column:group_updated_at;not null;default:now()" json:"group_updated_at"`
	GroupDeletedAt gorm.DeletedAt `gorm:"column:group_deleted_at;index" json:"-"`
}

func (GroupModel) TableName() string {
	return "groups"
}

// StudentGroupModel: keanggotaan siswa di grup (enrollment aktif/non).
type StudentGroupModel struct {
	StudentGroupID        uuid.UUID `gorm:"column:student_group_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"student_group_id"`
	StudentGroupSchoolID  uuid.UUID `gorm:"column:student_group_school_id;type:uuid;not null;index" json:"student_group_school_id"`
	StudentGroupStudentID uuid.UUID `gorm:"column:student_group_student_id;type:uuid;not null;uniqueIndex:uniq_student_group,priority:1" json:"student_group_student_id"`
	StudentGroupGroupID   uuid.UUID `gorm:"column:student_group_group_id;type:uuid;not null;uniqueIndex:uniq_student_group,priority:2" json:"student_group_group_id"`
	StudentGroupIsActive  bool      `gorm:"column:student_group_is_active;not null;default:true;index" json:"student_group_is_active"`

	StudentGroupCreatedAt time.Time `gorm:"column:student_group_created_at;not null;default:now()" json:"student_group_created_at"`
}

func (StudentGroupModel) TableName() string {
	return "student_groups"
}
