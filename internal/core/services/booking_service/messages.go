package booking_service

// Тексты интерфейса страницы записи.
const (
	msgNoDoctors          = "Brak dostępnych lekarzy."
	msgDoctorsLoadFailed  = "Wystąpił błąd podczas ładowania listy lekarzy."
	msgDoctorLoadFailed   = "Wystąpił błąd podczas ładowania danych lekarza. Sprawdź konsolę, aby uzyskać więcej informacji."
	msgInvalidResponse    = "Nieprawidłowa odpowiedź serwera."
	msgPastDate           = "Nie można wybrać daty z przeszłości."
	msgNoSlots            = "Brak dostępnych terminów w wybranym dniu."
	msgSlotsLoadFailed    = "Wystąpił błąd podczas ładowania dostępnych terminów."
	msgIncompleteBooking  = "Proszę wybrać wszystkie wymagane dane."
	msgBookingSucceeded   = "Twoja wizyta została umówiona pomyślnie!"
	msgBookingFailed      = "Wystąpił błąd podczas umawiania wizyty."
	msgLoading            = "Ładowanie..."
	msgSaving             = "Zapisywanie..."
	labelConfirm          = "Potwierdź wizytę"
	labelDefaultSpecialty = "Lekarz"
	labelNoBio            = "Brak dodatkowego opisu."
)
