package sqlinline

// QEnsureSchema is applied at startup. It carries no parameters so pgx runs
// it over the simple protocol, which allows several statements.
const QEnsureSchema = `--sql 82f4fae8-84e9-4dae-8396-9dfbc87eaf9c
create table if not exists users (
    id uuid primary key,
    external_id text not null unique,
    email text not null,
    name text,
    picture text,
    prompt_history jsonb not null default '[]'::jsonb,
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now()
);

create table if not exists integration_tokens (
    id uuid primary key,
    provider text not null unique,
    token text not null,
    properties jsonb not null default '{}'::jsonb,
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now()
);

create table if not exists novice_generations (
    id uuid primary key,
    user_id uuid not null,
    business_name text not null,
    business_description text not null,
    primary_color text,
    secondary_color text,
    logo_data_uri text not null,
    fingerprint text not null,
    created_at timestamptz not null default now(),
    unique (user_id, fingerprint)
);

create table if not exists professional_generations (
    id uuid primary key,
    user_id uuid not null,
    original_prompt text,
    refined_prompt text,
    used_prompt text not null,
    logo_data_uri text not null,
    fingerprint text not null,
    created_at timestamptz not null default now(),
    unique (user_id, fingerprint)
);

create table if not exists image_editor_generations (
    id uuid primary key,
    user_id uuid not null,
    source_image_uri text not null,
    source_image_original_name text,
    business_name text not null,
    business_description text not null,
    logo_data_uri text not null,
    fingerprint text not null,
    created_at timestamptz not null default now(),
    unique (user_id, fingerprint)
);

create index if not exists novice_generations_user_created_idx on novice_generations (user_id, created_at desc);
create index if not exists professional_generations_user_created_idx on professional_generations (user_id, created_at desc);
create index if not exists image_editor_generations_user_created_idx on image_editor_generations (user_id, created_at desc);
`
