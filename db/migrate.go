package db

import (
	"fmt"
	"log"

	"github.com/clinicdesk/clinic-admin-api/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Appointment{},
		&models.Notification{},
		&models.ActiveTherapy{},
		&models.TherapyLog{},
		&models.ClinicSettings{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	seedRolesAndPermissions()

	fmt.Println("✅ Migrations applied successfully!")
}

func seedRolesAndPermissions() {
	roles := []models.Role{
		{Name: models.RoleAdmin, Description: "Administrator with full access"},
		{Name: models.RoleOrganiser, Description: "Organiser who runs services and therapies"},
		{Name: models.RoleCustomer, Description: "Customer who books appointments"},
	}

	for _, role := range roles {
		var existingRole models.Role
		if DB.Where("name = ?", role.Name).First(&existingRole).RowsAffected == 0 {
			DB.Create(&role)
		}
	}

	permissions := []models.Permission{
		// User management
		{Name: "create_user", Description: "Create new users", Resource: "users", Action: "create"},
		{Name: "read_users", Description: "View user list", Resource: "users", Action: "read"},
		{Name: "update_user", Description: "Update user details", Resource: "users", Action: "update"},
		{Name: "delete_user", Description: "Delete users", Resource: "users", Action: "delete"},

		// Appointment management
		{Name: "create_appointment", Description: "Create appointments", Resource: "appointments", Action: "create"},
		{Name: "read_appointments", Description: "View appointments", Resource: "appointments", Action: "read"},
		{Name: "update_appointment", Description: "Update appointments", Resource: "appointments", Action: "update"},
		{Name: "delete_appointment", Description: "Cancel appointments", Resource: "appointments", Action: "delete"},

		// Service management
		{Name: "create_service", Description: "Create services", Resource: "services", Action: "create"},
		{Name: "read_services", Description: "View services", Resource: "services", Action: "read"},
		{Name: "update_service", Description: "Update services", Resource: "services", Action: "update"},
		{Name: "delete_service", Description: "Delete services", Resource: "services", Action: "delete"},

		// Therapy management
		{Name: "create_therapy", Description: "Create active therapies", Resource: "therapies", Action: "create"},
		{Name: "read_therapies", Description: "View active therapies", Resource: "therapies", Action: "read"},
		{Name: "update_therapy", Description: "Update therapy progress", Resource: "therapies", Action: "update"},

		// Settings management
		{Name: "read_settings", Description: "View clinic settings", Resource: "settings", Action: "read"},
		{Name: "update_settings", Description: "Update clinic settings", Resource: "settings", Action: "update"},

		// Role management
		{Name: "read_roles", Description: "View roles", Resource: "roles", Action: "read"},
		{Name: "read_permissions", Description: "View permissions", Resource: "permissions", Action: "read"},
	}

	for _, permission := range permissions {
		var existingPermission models.Permission
		if DB.Where("name = ?", permission.Name).First(&existingPermission).RowsAffected == 0 {
			DB.Create(&permission)
		}
	}

	// Admins hold every permission
	var adminRole models.Role
	if DB.Where("name = ?", models.RoleAdmin).First(&adminRole).RowsAffected > 0 {
		var allPermissions []models.Permission
		DB.Find(&allPermissions)

		DB.Model(&adminRole).Association("Permissions").Clear()
		DB.Model(&adminRole).Association("Permissions").Append(allPermissions)
	}

	// Organisers run the day-to-day schedule but do not manage users or settings
	var organiserRole models.Role
	if DB.Where("name = ?", models.RoleOrganiser).First(&organiserRole).RowsAffected > 0 {
		var organiserPermissions []models.Permission
		DB.Where("resource IN (?)", []string{"appointments", "services", "therapies"}).
			Where("action IN (?)", []string{"read", "create", "update"}).
			Find(&organiserPermissions)

		var userReadPermission models.Permission
		DB.Where("name = ?", "read_users").First(&userReadPermission)
		organiserPermissions = append(organiserPermissions, userReadPermission)

		DB.Model(&organiserRole).Association("Permissions").Clear()
		DB.Model(&organiserRole).Association("Permissions").Append(organiserPermissions)
	}

	// Customers only touch their own bookings
	var customerRole models.Role
	if DB.Where("name = ?", models.RoleCustomer).First(&customerRole).RowsAffected > 0 {
		var customerPermissions []models.Permission
		DB.Where("name IN (?)", []string{
			"create_appointment",
			"read_appointments",
			"read_services",
		}).Find(&customerPermissions)

		DB.Model(&customerRole).Association("Permissions").Clear()
		DB.Model(&customerRole).Association("Permissions").Append(customerPermissions)
	}
}
