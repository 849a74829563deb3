// file: internals/features/payroll/records/scheduler/payroll_scheduler.go
package scheduler

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	contractModel "educenter_backend/internals/features/payroll/contracts/model"
	repository "educenter_backend/internals/features/payroll/records/repository"
	service "educenter_backend/internals/features/payroll/records/service"
)

// StartPayrollScheduler menghitung payroll bulan sebelumnya untuk semua
// payee berkontrak aktif, setiap awal bulan. Aman dijalankan berulang:
// record yang masih draft/calculated dihitung ulang dengan hasil sama,
// yang sudah approved dilewati.
func StartPayrollScheduler(db *gorm.DB) {
	go func() {
		calculator := service.NewCalculator(repository.NewGormPayrollStore(db))

		for {
			now := time.Now()
			// Tidur sampai hari pertama bulan berikutnya jam 02:00
			next := time.Date(now.Year(), now.Month(), 1, 2, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
			time.Sleep(time.Until(next))

			// Periode yang dihitung = bulan yang baru saja lewat
			period := next.AddDate(0, -1, 0)
			runOnce(db, calculator, int16(period.Month()), int16(period.Year()))
		}
	}()
}

func runOnce(db *gorm.DB, calculator *service.Calculator, month, year int16) {
	log.Printf("[PAYROLL] Menjalankan kalkulasi payroll periode %d/%d...", month, year)

	var contracts []contractModel.PayrollContractModel
	if err := db.
		Where("payroll_contract_is_active = TRUE").
		Find(&contracts).Error; err != nil {
		log.Printf("[PAYROLL ERROR] Gagal ambil kontrak aktif: %v", err)
		return
	}

	ctx := context.Background()
	done := 0
	for _, c := range contracts {
		payeeID := c.PayeeID()
		if _, err := calculator.Calculate(ctx, c.PayrollContractSchoolID, payeeID, month, year); err != nil {
			log.Printf("[PAYROLL ERROR] Gagal hitung payee %s: %v", payeeID, err)
			continue
		}
		done++
	}
	log.Printf("[PAYROLL] Kalkulasi periode %d/%d selesai: %d/%d payee", month, year, done, len(contracts))
}
