package domain

// RDF types of the records this service reads and writes.
const (
	TypeActivity           = "http://www.w3.org/ns/prov#Activity"
	TypeSubmissionActivity = "http://mu.semte.ch/vocabularies/ext/Indieningsactiviteit"
	TypeAgendaActivity     = "https://data.vlaanderen.be/ns/besluitvorming#Agendering"
	TypeDecisionActivity   = "https://data.vlaanderen.be/ns/besluitvorming#Beslissingsactiviteit"
	TypeTreatment          = "http://data.vlaanderen.be/ns/besluit#BehandelingVanAgendapunt"
	TypeAgendaItem         = "http://data.vlaanderen.be/ns/besluit#Agendapunt"
	TypeAgenda             = "https://data.vlaanderen.be/ns/besluitvorming#Agenda"
	TypeMeeting            = "http://data.vlaanderen.be/ns/besluit#Vergaderactiviteit"
	TypeSubcase            = "https://data.vlaanderen.be/ns/dossier#Procedurestap"
	TypeNewsItem           = "http://mu.semte.ch/vocabularies/ext/Nieuwsbericht"
	TypeSignFlow           = "http://mu.semte.ch/vocabularies/ext/handtekenen/Handtekenaangelegenheid"
)

// Predicates used in synthesized statements.
const (
	PredRDFType            = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	PredUUID               = "http://mu.semte.ch/vocabularies/core/uuid"
	PredStartDate          = "https://data.vlaanderen.be/ns/dossier#startDatum"
	PredActivityStartDate  = "https://data.vlaanderen.be/ns/dossier#Activiteit.startdatum"
	PredTakesPlaceDuring   = "https://data.vlaanderen.be/ns/besluitvorming#vindtPlaatsTijdens"
	PredWasInformedBy      = "http://www.w3.org/ns/prov#wasInformedBy"
	PredGenerated          = "http://www.w3.org/ns/prov#generated"
	PredWasAssociatedWith  = "http://www.w3.org/ns/prov#wasAssociatedWith"
	PredWasDerivedFrom     = "http://www.w3.org/ns/prov#wasDerivedFrom"
	PredWasRevisionOf      = "http://www.w3.org/ns/prov#wasRevisionOf"
	PredDecisionResult     = "https://data.vlaanderen.be/ns/besluitvorming#resultaat"
	PredDecisionDuring     = "http://mu.semte.ch/vocabularies/ext/beslissingVindtPlaatsTijdens"
	PredSubmissionDuring   = "http://mu.semte.ch/vocabularies/ext/indieningVindtPlaatsTijdens"
	PredHasDecision        = "https://data.vlaanderen.be/ns/besluitvorming#heeftBeslissing"
	PredSignHasDecision    = "http://mu.semte.ch/vocabularies/ext/handtekenen/heeftBeslissing"
	PredCreated            = "http://purl.org/dc/terms/created"
	PredModified           = "http://purl.org/dc/terms/modified"
	PredSubject            = "http://purl.org/dc/terms/subject"
	PredTitle              = "http://purl.org/dc/terms/title"
	PredShortTitle         = "https://data.vlaanderen.be/ns/besluitvorming#korteTitel"
	PredAlternative        = "http://purl.org/dc/terms/alternative"
	PredItemType           = "http://purl.org/dc/terms/type"
	PredPosition           = "http://schema.org/position"
	PredFormallyOK         = "http://mu.semte.ch/vocabularies/ext/formeelOK"
	PredItemMandatee       = "http://mu.semte.ch/vocabularies/ext/heeftBevoegdeVoorAgendapunt"
	PredSubcaseMandatee    = "http://mu.semte.ch/vocabularies/ext/heeftBevoegde"
	PredScheduledPiece     = "https://data.vlaanderen.be/ns/besluitvorming#geagendeerdStuk"
	PredItemLinkedPiece    = "http://mu.semte.ch/vocabularies/ext/bevatReedsBezorgdAgendapuntDocumentversie"
	PredSubcaseLinkedPiece = "http://mu.semte.ch/vocabularies/ext/bevatReedsBezorgdeDocumentversie"
	PredIsApprovalItem     = "http://mu.semte.ch/vocabularies/ext/isGoedkeuringVanDeNotulen"
	PredGeneratesItem      = "https://data.vlaanderen.be/ns/besluitvorming#genereertAgendapunt"
	PredHasPart            = "http://purl.org/dc/terms/hasPart"
	PredAgendaFor          = "https://data.vlaanderen.be/ns/besluitvorming#isAgendaVoor"
	PredHandles            = "https://data.vlaanderen.be/ns/besluitvorming#behandelt"
	PredHTMLContent        = "http://www.semanticdesktop.org/ontologies/2007/01/19/nie#htmlContent"
	PredFinished           = "http://mu.semte.ch/vocabularies/ext/afgewerkt"
	PredInNewsletter       = "http://mu.semte.ch/vocabularies/ext/inNieuwsbrief"
	PredMandateePriority   = "http://data.vlaanderen.be/ns/mandaat#rangorde"

	PredSubcaseItemType             = "http://mu.semte.ch/vocabularies/ext/agendapuntType"
	PredPlannedStart                = "http://data.vlaanderen.be/ns/besluit#geplandeStart"
	PredMeetingSecretary            = "http://mu.semte.ch/vocabularies/ext/secretarisVoorVergadering"
	PredMarkedPiece                 = "http://mu.semte.ch/vocabularies/ext/handtekenen/gemarkeerdStuk"
	PredMarkingDuring               = "http://mu.semte.ch/vocabularies/ext/handtekenen/markeringVindtPlaatsTijdens"
	PredSignThroughFlow             = "http://mu.semte.ch/vocabularies/ext/handtekenen/doorlooptHandtekening"
	PredInternalDecisionPublication = "http://mu.semte.ch/vocabularies/ext/internalDecisionPublicationActivityUsed"
	PredStartedAtTime               = "http://www.w3.org/ns/prov#startedAtTime"
	PredAgendaStatus                = "https://data.vlaanderen.be/ns/besluitvorming#agendaStatus"
	PredSessionAccount              = "http://mu.semte.ch/vocabularies/session/account"
)

// Concept scheme URIs.
const (
	ConceptDecisionPostponed    = "http://themis.vlaanderen.be/id/concept/beslissing-resultaatcodes/a29b3ffd-0839-45cb-b8f4-e1760f7aacaa"
	ConceptDecisionRetracted    = "http://themis.vlaanderen.be/id/concept/beslissing-resultaatcodes/453a36e8-6fbd-45d3-b800-ec96e59f273b"
	ConceptDecisionAcknowledged = "http://themis.vlaanderen.be/id/concept/beslissing-resultaatcodes/9f342a88-9485-4a83-87d9-245ed4b504bf"

	ConceptFormallyNotYetOK = "http://kanselarij.vo.data.gift/id/concept/goedkeurings-statussen/B72D1561-8172-466B-B3B6-FCC372C287D0"
	ConceptFormallyOK       = "http://kanselarij.vo.data.gift/id/concept/goedkeurings-statussen/CC12A7DB-A73A-4589-9D53-F3C2F4A40636"

	ConceptAgendaApproved = "http://kanselarij.vo.data.gift/id/agendastatus/ff0539e6-3e63-450b-a9b7-cc6463a0d3d1"

	ConceptItemTypeAnnouncement = "http://themis.vlaanderen.be/id/concept/agendapunt-type/8f8adcf0-58ef-4edc-9e36-0c9095fd76b0"
)

// Named graphs for queries that bypass the authorization proxy.
const (
	GraphKanselarij = "http://mu.semte.ch/graphs/organizations/kanselarij"
	GraphSubmission = "http://mu.semte.ch/graphs/system/submissions"
	GraphPublic     = "http://mu.semte.ch/graphs/public"
)

// Submission-portal vocabulary, used when relinking preliminary records.
const (
	TypePortalSubmission = "http://mu.semte.ch/vocabularies/ext/submissions/Indiening"

	PredPortalSubmittedFor      = "http://mu.semte.ch/vocabularies/ext/submissions/ingediendVoorProcedurestap"
	PredPortalPreliminaryNews   = "http://mu.semte.ch/vocabularies/ext/submissions/heeftVoorlopigNieuwsBericht"
	PredPortalPreliminaryReport = "http://mu.semte.ch/vocabularies/ext/submissions/heeftVoorlopigeBeslissing"
	PredReportDescribesDecision = "https://data.vlaanderen.be/ns/besluitvorming#beschrijft"
)

// URI bases for freshly minted records.
const (
	BaseAgendaActivity     = "http://themis.vlaanderen.be/id/agendering/"
	BaseDecisionActivity   = "http://themis.vlaanderen.be/id/beslissingsactiviteit/"
	BaseSubmissionActivity = "http://kanselarij.vo.data.gift/id/indieningsactiviteit/"
	BaseTreatment          = "http://themis.vlaanderen.be/id/behandeling-van-agendapunt/"
	BaseNewsItem           = "http://themis.vlaanderen.be/id/nieuwsbericht/"
	BaseAgendaItem         = "http://themis.vlaanderen.be/id/agendapunt/"
)
