package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/carecentral/activity-service/internal/adapters/database"
	"github.com/carecentral/activity-service/internal/domain/entities"
	"github.com/carecentral/activity-service/internal/infrastructure/clients/postgres"
	"github.com/carecentral/activity-service/pkg/config"
)

const seedActor = "seed-script"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				routine_exclusion,
				routine,
				activity_exclusion,
				adhoc,
				centre_activity_preference,
				centre_activity_recommendation,
				centre_activity_exclusion,
				centre_activity_availability,
				centre_activity,
				centre_slot_config,
				activity,
				care_centre
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	now := time.Now().UTC()
	stamp := func() (time.Time, time.Time, string, string) {
		return now, now, seedActor, seedActor
	}

	// 1. Slot grid: eight one-hour slots from 09:00, Monday to Friday
	for weekday := 0; weekday < 5; weekday++ {
		for slotIndex := 0; slotIndex < 8; slotIndex++ {
			_, err := pgClient.DB().ExecContext(ctx,
				`INSERT INTO centre_slot_config (weekday, slot_index, start_minutes, duration_minutes)
				 VALUES ($1, $2, $3, 60) ON CONFLICT DO NOTHING`,
				weekday, slotIndex, 9*60+slotIndex*60,
			)
			if err != nil {
				log.Fatalf("Failed to seed slot config: %v", err)
			}
		}
	}

	// 2. Care centre
	centreRepo := database.NewCareCentreAdapter(pgClient)
	centre := &entities.CareCentre{
		Name:             "Sunrise Day Centre",
		CountryCode:      "SGP",
		Address:          "21 Evergreen Lane",
		PostalCode:       "310021",
		ContactNo:        "65550021",
		Email:            "hello@sunrise.example",
		NoOfDevicesAvail: 12,
		WorkingDays:      "0-4",
		OpeningHours:     "09:00",
		ClosingHours:     "17:00",
	}
	centre.CreatedDate, centre.ModifiedDate, centre.CreatedByID, centre.ModifiedByID = stamp()
	if err := centreRepo.Create(ctx, centre); err != nil {
		log.Printf("Failed to create care centre: %v", err)
	}

	// 3. Activity templates
	activityRepo := database.NewActivityAdapter(pgClient)
	activities := []*entities.Activity{
		{Active: true, Title: "Mahjong", Description: "Four-player tile game", StartDate: now},
		{Active: true, Title: "Morning Tai Chi", Description: "Low-impact group exercise", StartDate: now},
		{Active: true, Title: "Art Therapy", Description: "Guided painting and crafts", StartDate: now},
		{Active: true, Title: "Physiotherapy", Description: "One-on-one mobility session", StartDate: now},
	}
	for _, a := range activities {
		a.CreatedDate, a.ModifiedDate, a.CreatedByID, a.ModifiedByID = stamp()
		if err := activityRepo.Create(ctx, a); err != nil {
			log.Printf("Failed to create activity %s: %v", a.Title, err)
		}
	}

	// 4. Centre activities: two fixed, one flexible, one fixed-without-slots
	caRepo := database.NewCentreActivityAdapter(pgClient)
	centreActivities := []*entities.CentreActivity{
		{ActivityID: activities[0].ID, Active: true, IsFixed: true, IsGroup: true, MinPeopleReq: 4, MinDuration: 60, MaxDuration: 60, FixedTimeSlots: "0-3,2-3"},
		{ActivityID: activities[1].ID, Active: true, IsCompulsory: true, IsFixed: true, IsGroup: true, MinPeopleReq: 5, MinDuration: 30, MaxDuration: 60, FixedTimeSlots: "0-0,1-0,2-0,3-0,4-0"},
		{ActivityID: activities[2].ID, Active: true, MinDuration: 45, MaxDuration: 90},
		{ActivityID: activities[3].ID, Active: true, IsFixed: true, MinDuration: 30, MaxDuration: 45},
	}
	for _, ca := range centreActivities {
		ca.CreatedDate, ca.ModifiedDate, ca.CreatedByID, ca.ModifiedByID = stamp()
		if err := caRepo.Create(ctx, ca); err != nil {
			log.Printf("Failed to create centre activity for activity %d: %v", ca.ActivityID, err)
		}
	}

	// 5. Availability windows for the flexible offering
	availRepo := database.NewAvailabilityAdapter(pgClient)
	nextMonday := now.AddDate(0, 0, (8-int(now.Weekday()))%7)
	day := time.Date(nextMonday.Year(), nextMonday.Month(), nextMonday.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		start := day.AddDate(0, 0, i).Add(14 * time.Hour)
		availability := &entities.CentreActivityAvailability{
			CentreActivityID: centreActivities[2].ID,
			StartTime:        start,
			EndTime:          start.Add(time.Hour),
		}
		availability.CreatedDate, availability.ModifiedDate, availability.CreatedByID, availability.ModifiedByID = stamp()
		if err := availRepo.Create(ctx, availability); err != nil {
			log.Printf("Failed to create availability: %v", err)
		}
	}

	// 6. Patient-scoped rows: exclusion, recommendation, preference, adhoc
	exclusionRepo := database.NewExclusionAdapter(pgClient)
	exclusion := &entities.CentreActivityExclusion{
		CentreActivityID: centreActivities[0].ID,
		PatientID:        "patient-001",
		ExclusionRemarks: "recovering from wrist surgery",
		StartDate:        day,
	}
	exclusion.CreatedDate, exclusion.ModifiedDate, exclusion.CreatedByID, exclusion.ModifiedByID = stamp()
	if err := exclusionRepo.Create(ctx, exclusion); err != nil {
		log.Printf("Failed to create exclusion: %v", err)
	}

	recRepo := database.NewRecommendationAdapter(pgClient)
	rec := &entities.CentreActivityRecommendation{
		CentreActivityID:     centreActivities[1].ID,
		PatientID:            "patient-001",
		DoctorID:             "doctor-007",
		DoctorRecommendation: entities.RatingRecommended,
		DoctorRemarks:        "good for balance",
	}
	rec.CreatedDate, rec.ModifiedDate, rec.CreatedByID, rec.ModifiedByID = stamp()
	if err := recRepo.Create(ctx, rec); err != nil {
		log.Printf("Failed to create recommendation: %v", err)
	}

	prefRepo := database.NewPreferenceAdapter(pgClient)
	pref := &entities.CentreActivityPreference{
		CentreActivityID: centreActivities[1].ID,
		PatientID:        "patient-001",
		IsLike:           entities.RatingRecommended,
	}
	pref.CreatedDate, pref.ModifiedDate, pref.CreatedByID, pref.ModifiedByID = stamp()
	if err := prefRepo.Create(ctx, pref); err != nil {
		log.Printf("Failed to create preference: %v", err)
	}

	adhocRepo := database.NewAdhocAdapter(pgClient)
	adhoc := &entities.Adhoc{
		OldCentreActivityID: centreActivities[0].ID,
		NewCentreActivityID: centreActivities[2].ID,
		PatientID:           "patient-001",
		Status:              entities.AdhocStatusPending,
		StartTime:           day,
		EndTime:             day.AddDate(0, 0, 7),
	}
	adhoc.CreatedDate, adhoc.ModifiedDate, adhoc.CreatedByID, adhoc.ModifiedByID = stamp()
	if err := adhocRepo.Create(ctx, adhoc); err != nil {
		log.Printf("Failed to create adhoc: %v", err)
	}

	routineRepo := database.NewRoutineAdapter(pgClient)
	routine := &entities.Routine{
		Name:         "Monday morning tai chi",
		ActivityID:   activities[1].ID,
		PatientID:    "patient-001",
		DayOfWeek:    0,
		StartMinutes: 9 * 60,
		EndMinutes:   10 * 60,
		StartDate:    day,
		EndDate:      day.AddDate(0, 3, 0),
	}
	routine.CreatedDate, routine.ModifiedDate, routine.CreatedByID, routine.ModifiedByID = stamp()
	if err := routineRepo.Create(ctx, routine); err != nil {
		log.Printf("Failed to create routine: %v", err)
	}

	routineExclRepo := database.NewRoutineExclusionAdapter(pgClient)
	routineExcl := &entities.RoutineExclusion{
		RoutineID: routine.ID,
		StartDate: day.AddDate(0, 1, 0),
		EndDate:   day.AddDate(0, 1, 7),
		Remarks:   "family holiday",
	}
	routineExcl.CreatedDate, routineExcl.ModifiedDate, routineExcl.CreatedByID, routineExcl.ModifiedByID = stamp()
	if err := routineExclRepo.Create(ctx, routineExcl); err != nil {
		log.Printf("Failed to create routine exclusion: %v", err)
	}

	activityExclRepo := database.NewActivityExclusionAdapter(pgClient)
	activityExcl := &entities.ActivityExclusion{
		ActivityID:       activities[3].ID,
		PatientID:        "patient-001",
		ExclusionRemarks: "pending physician clearance",
		StartDate:        day,
	}
	activityExcl.CreatedDate, activityExcl.ModifiedDate, activityExcl.CreatedByID, activityExcl.ModifiedByID = stamp()
	if err := activityExclRepo.Create(ctx, activityExcl); err != nil {
		log.Printf("Failed to create activity exclusion: %v", err)
	}

	log.Println("Seeding complete")
}
